package models

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ProjectID       uint           `gorm:"not null;index" json:"project_id"`
	TaskID          uint           `gorm:"not null;index" json:"task_id"`
	StartedAt       time.Time      `gorm:"not null;index" json:"started_at"`
	EndedAt         *time.Time     `gorm:"index" json:"ended_at"`
	DurationSeconds int64          `gorm:"not null;default:0" json:"duration_seconds"`
	Note            string         `json:"note"`
	Hostname        string         `json:"hostname"`
	IPAddress       string         `json:"ip_address"`
	MACAddress      string         `json:"mac_address"`
	// ScreenshotPermission records whether the client consented to (or was
	// capable of) screen capture for this session.
	ScreenshotPermission bool `gorm:"not null;default:false" json:"is_screenshot_permission_enabled"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Open reports whether the session has been clocked out yet.
func (s *Session) Open() bool {
	return s.EndedAt == nil
}

type ProjectSummary struct {
	ProjectID    uint    `json:"project_id"`
	ProjectName  string  `json:"project_name"`
	TotalSeconds int64   `json:"total_seconds"`
	TotalMinutes float64 `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
	SessionCount int     `json:"session_count"`
	Percentage   float64 `json:"percentage,omitempty"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type Report struct {
	Period       ReportPeriod     `json:"period"`
	Projects     []ProjectSummary `json:"projects"`
	TotalSeconds int64            `json:"total_seconds"`
	TotalMinutes float64          `json:"total_minutes"`
	TotalHours   float64          `json:"total_hours"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
