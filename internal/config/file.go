package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigDir  = ".config/timeclock"
	defaultConfigName = "config.toml"
)

// fileConfig is the on-disk TOML shape. Pointers distinguish "not set" from
// zero values so the file only overrides what it mentions.
type fileConfig struct {
	Database struct {
		Path *string `toml:"path"`
	} `toml:"database"`
	Tracker struct {
		CaptureIntervalSeconds *int    `toml:"capture_interval_seconds"`
		ScreenshotDir          *string `toml:"screenshot_dir"`
		CompressQuality        *int    `toml:"compress_quality"`
	} `toml:"tracker"`
	Daemon struct {
		PIDFile *string `toml:"pid_file"`
		LogFile *string `toml:"log_file"`
	} `toml:"daemon"`
	Report struct {
		TimeZone *string `toml:"timezone"`
	} `toml:"report"`
	Web struct {
		Host *string `toml:"host"`
		Port *int    `toml:"port"`
	} `toml:"web"`
	Auth struct {
		Secret                 *string `toml:"secret"`
		Email                  *string `toml:"email"`
		Password               *string `toml:"password"`
		AccessTokenTTLSeconds  *int    `toml:"access_token_ttl_seconds"`
		RefreshTokenTTLSeconds *int    `toml:"refresh_token_ttl_seconds"`
	} `toml:"auth"`
}

// DefaultFilePath returns ~/.config/timeclock/config.toml.
func DefaultFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, defaultConfigDir, defaultConfigName), nil
}

// LoadFromFile merges settings from a TOML file into cfg. A missing file is
// not an error.
func LoadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Database.Path != nil {
		cfg.Database.Path = *fc.Database.Path
	}
	if fc.Tracker.CaptureIntervalSeconds != nil {
		cfg.Tracker.CaptureInterval = time.Duration(*fc.Tracker.CaptureIntervalSeconds) * time.Second
	}
	if fc.Tracker.ScreenshotDir != nil {
		cfg.Tracker.ScreenshotDir = *fc.Tracker.ScreenshotDir
	}
	if fc.Tracker.CompressQuality != nil {
		cfg.Tracker.CompressQuality = *fc.Tracker.CompressQuality
	}
	if fc.Daemon.PIDFile != nil {
		cfg.Daemon.PIDFile = *fc.Daemon.PIDFile
	}
	if fc.Daemon.LogFile != nil {
		cfg.Daemon.LogFile = *fc.Daemon.LogFile
	}
	if fc.Report.TimeZone != nil {
		cfg.Report.TimeZone = *fc.Report.TimeZone
	}
	if fc.Web.Host != nil {
		cfg.Web.Host = *fc.Web.Host
	}
	if fc.Web.Port != nil {
		cfg.Web.Port = *fc.Web.Port
	}
	if fc.Auth.Secret != nil {
		cfg.Auth.Secret = *fc.Auth.Secret
	}
	if fc.Auth.Email != nil {
		cfg.Auth.Email = *fc.Auth.Email
	}
	if fc.Auth.Password != nil {
		cfg.Auth.Password = *fc.Auth.Password
	}
	if fc.Auth.AccessTokenTTLSeconds != nil {
		cfg.Auth.AccessTokenTTL = time.Duration(*fc.Auth.AccessTokenTTLSeconds) * time.Second
	}
	if fc.Auth.RefreshTokenTTLSeconds != nil {
		cfg.Auth.RefreshTokenTTL = time.Duration(*fc.Auth.RefreshTokenTTLSeconds) * time.Second
	}

	return nil
}
