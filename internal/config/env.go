package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables.
// Environment variables override defaults and the config file.
func LoadFromEnv(cfg *Config) {
	if dbPath := os.Getenv("TIMECLOCK_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if interval := os.Getenv("TIMECLOCK_CAPTURE_INTERVAL"); interval != "" {
		if seconds, err := strconv.Atoi(interval); err == nil && seconds > 0 {
			d := time.Duration(seconds) * time.Second
			if d >= cfg.Tracker.MinCaptureInterval && d <= cfg.Tracker.MaxCaptureInterval {
				cfg.Tracker.CaptureInterval = d
			}
		}
	}

	if dir := os.Getenv("TIMECLOCK_SCREENSHOT_DIR"); dir != "" {
		cfg.Tracker.ScreenshotDir = dir
	}

	if quality := os.Getenv("TIMECLOCK_COMPRESS_QUALITY"); quality != "" {
		if q, err := strconv.Atoi(quality); err == nil && q >= 1 && q <= 100 {
			cfg.Tracker.CompressQuality = q
		}
	}

	if pidFile := os.Getenv("TIMECLOCK_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv("TIMECLOCK_LOG_FILE"); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	if timeZone := os.Getenv("TIMECLOCK_TIMEZONE"); timeZone != "" {
		cfg.Report.TimeZone = timeZone
	}

	if webHost := os.Getenv("TIMECLOCK_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("TIMECLOCK_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}

	if secret := os.Getenv("TIMECLOCK_AUTH_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}

	if email := os.Getenv("TIMECLOCK_AUTH_EMAIL"); email != "" {
		cfg.Auth.Email = email
	}

	if password := os.Getenv("TIMECLOCK_AUTH_PASSWORD"); password != "" {
		cfg.Auth.Password = password
	}

	if ttl := os.Getenv("TIMECLOCK_ACCESS_TOKEN_TTL"); ttl != "" {
		if seconds, err := strconv.Atoi(ttl); err == nil && seconds > 0 {
			cfg.Auth.AccessTokenTTL = time.Duration(seconds) * time.Second
		}
	}

	if ttl := os.Getenv("TIMECLOCK_REFRESH_TOKEN_TTL"); ttl != "" {
		if seconds, err := strconv.Atoi(ttl); err == nil && seconds > 0 {
			cfg.Auth.RefreshTokenTTL = time.Duration(seconds) * time.Second
		}
	}
}

// New creates a Config from defaults, the config file (if present) and
// environment variables, in increasing order of precedence. A missing
// config file is fine; a malformed one is an error.
func New() (*Config, error) {
	cfg := Default()
	if path, err := DefaultFilePath(); err == nil {
		if err := LoadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	LoadFromEnv(cfg)
	return cfg, nil
}
