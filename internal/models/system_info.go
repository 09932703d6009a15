package models

import (
	"time"

	"gorm.io/gorm"
)

// SystemInfo is the network/host snapshot taken at clock-in. Interface
// details are kept as a JSON blob so the schema does not chase the shape of
// whatever interfaces the machine happens to have.
type SystemInfo struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SessionID  uint           `gorm:"not null;index" json:"session_id"`
	Timestamp  time.Time      `gorm:"not null;index" json:"timestamp"`
	Hostname   string         `gorm:"not null" json:"hostname"`
	IPAddress  string         `json:"ip_address"`
	MACAddress string         `json:"mac_address"`
	Platform   string         `json:"platform"`
	Kernel     string         `json:"kernel"`
	Interfaces string         `json:"interfaces"` // JSON-encoded per-interface addresses
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
