package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Report configuration
	Report ReportConfig

	// Web server configuration
	Web WebConfig

	// Auth configuration for the HTTP API
	Auth AuthConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// TrackerConfig holds session tracking behavior configuration
type TrackerConfig struct {
	CaptureInterval    time.Duration // How often to capture a screenshot during an open session
	MinCaptureInterval time.Duration // Minimum allowed capture interval
	MaxCaptureInterval time.Duration // Maximum allowed capture interval
	ScreenshotDir      string        // Directory screenshots are written to
	CompressQuality    int           // JPEG quality used when recompressing captures (1-100)
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
	LogFile string // Log file used by the daemonized child
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	TimeZone string
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// AuthConfig holds credentials and token settings for the HTTP API.
// Login is disabled until Email, Password and Secret are all set.
type AuthConfig struct {
	Secret          string        // HMAC secret for signing tokens
	Email           string        // Login email accepted by POST /api/auth/login
	Password        string        // Login password
	AccessTokenTTL  time.Duration // Lifetime of access tokens
	RefreshTokenTTL time.Duration // Lifetime of refresh tokens
	Issuer          string
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/timeclock/timeclock.db
		},
		Tracker: TrackerConfig{
			CaptureInterval:    10 * time.Minute, // Screenshot every 10 minutes while clocked in
			MinCaptureInterval: 1 * time.Minute,
			MaxCaptureInterval: 1 * time.Hour,
			ScreenshotDir:      "", // Empty means use default ~/.config/timeclock/screenshots
			CompressQuality:    70,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/timeclock-%d.pid", os.Getuid()),
			LogFile: "/tmp/timeclock.log",
		},
		Report: ReportConfig{
			TimeZone: "Local",
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10000 + os.Getuid(),
		},
		Auth: AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			Issuer:          "timeclock",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tracker.CaptureInterval < c.Tracker.MinCaptureInterval {
		return fmt.Errorf("capture interval (%v) cannot be less than minimum (%v)",
			c.Tracker.CaptureInterval, c.Tracker.MinCaptureInterval)
	}

	if c.Tracker.CaptureInterval > c.Tracker.MaxCaptureInterval {
		return fmt.Errorf("capture interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.CaptureInterval, c.Tracker.MaxCaptureInterval)
	}

	if c.Tracker.CompressQuality < 1 || c.Tracker.CompressQuality > 100 {
		return fmt.Errorf("compress quality must be between 1 and 100, got %d", c.Tracker.CompressQuality)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}

	if c.Auth.RefreshTokenTTL < c.Auth.AccessTokenTTL {
		return fmt.Errorf("refresh token lifetime (%v) cannot be shorter than access token lifetime (%v)",
			c.Auth.RefreshTokenTTL, c.Auth.AccessTokenTTL)
	}

	return nil
}

// ValidateAuth checks that login credentials are configured. Only the serve
// command needs this; purely local commands run without any auth settings.
func (c *Config) ValidateAuth() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required to serve the API")
	}
	if c.Auth.Email == "" || c.Auth.Password == "" {
		return fmt.Errorf("login email and password are required to serve the API")
	}
	return nil
}

// SetCaptureInterval sets the screenshot capture interval with validation
func (c *Config) SetCaptureInterval(interval time.Duration) error {
	if interval < c.Tracker.MinCaptureInterval {
		return fmt.Errorf("capture interval cannot be less than %v", c.Tracker.MinCaptureInterval)
	}
	if interval > c.Tracker.MaxCaptureInterval {
		return fmt.Errorf("capture interval cannot be greater than %v", c.Tracker.MaxCaptureInterval)
	}
	c.Tracker.CaptureInterval = interval
	return nil
}

// SetWebPort sets the web server port with validation
func (c *Config) SetWebPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	c.Web.Port = port
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Tracker:
    Capture Interval: %v
    Min Interval: %v
    Max Interval: %v
    Screenshot Dir: %s
    Compress Quality: %d
  Daemon:
    PID File: %s
    Log File: %s
  Report:
    Time Zone: %s
  Web:
    Host: %s
    Port: %d`,
		c.Database.Path,
		c.Tracker.CaptureInterval,
		c.Tracker.MinCaptureInterval,
		c.Tracker.MaxCaptureInterval,
		c.Tracker.ScreenshotDir,
		c.Tracker.CompressQuality,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Report.TimeZone,
		c.Web.Host,
		c.Web.Port,
	)
}
