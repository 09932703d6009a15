package models

import (
	"time"

	"gorm.io/gorm"
)

type Screenshot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SessionID uint           `gorm:"not null;index" json:"session_id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	FilePath  string         `gorm:"not null" json:"file_path"`
	Format    string         `gorm:"not null" json:"format"` // "png" or "jpeg"
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	ByteSize  int64          `json:"byte_size"`
	Uploaded  bool           `gorm:"not null;default:false" json:"uploaded"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
