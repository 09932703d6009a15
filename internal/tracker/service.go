package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/logger"
	"timeclock/internal/models"
	"timeclock/pkg/screen"
	"timeclock/pkg/sysinfo"
)

var (
	// ErrSessionOpen is returned by ClockIn when a session is already running
	ErrSessionOpen = errors.New("a session is already open")

	// ErrNoOpenSession is returned by ClockOut when nothing is running
	ErrNoOpenSession = errors.New("no open session")
)

type Service struct {
	config   *config.Config
	repo     *database.Repository
	grabber  screen.Grabber // nil when no capture backend is available
	log      *logger.Logger
	stopChan chan struct{}

	// mu guards running and stopped; IsRunning and Stop are called from
	// other goroutines than the capture loop.
	mu      sync.Mutex
	running bool
	stopped bool
}

func NewService(cfg *config.Config, repo *database.Repository, grabber screen.Grabber, log *logger.Logger) *Service {
	return &Service{
		config:   cfg,
		repo:     repo,
		grabber:  grabber,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// ClockIn opens a new work session against a project/task and attaches the
// system-info snapshot taken at this moment.
func (s *Service) ClockIn(projectID, taskID uint, note string) (*models.Session, error) {
	if _, err := s.repo.GetProjectByID(projectID); err != nil {
		return nil, fmt.Errorf("unknown project %d: %w", projectID, err)
	}
	task, err := s.repo.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("unknown task %d: %w", taskID, err)
	}
	if task.ProjectID != projectID {
		return nil, fmt.Errorf("task %d does not belong to project %d", taskID, projectID)
	}

	open, err := s.repo.GetOpenSession()
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrSessionOpen
	}

	session := &models.Session{
		ProjectID:            projectID,
		TaskID:               taskID,
		StartedAt:            time.Now(),
		Note:                 note,
		ScreenshotPermission: s.PermissionProbe(),
	}

	// The snapshot is best-effort: a machine with a broken hostname query
	// still gets a session.
	snap, err := sysinfo.Collect()
	if err != nil {
		s.storeError("sysinfo", err)
	} else {
		session.Hostname = snap.Hostname
		session.IPAddress = snap.PrimaryIP
		session.MACAddress = snap.PrimaryMAC
	}

	if err := s.repo.CreateSession(session); err != nil {
		return nil, err
	}

	if snap != nil {
		info := &models.SystemInfo{
			SessionID:  session.ID,
			Timestamp:  snap.Timestamp,
			Hostname:   snap.Hostname,
			IPAddress:  snap.PrimaryIP,
			MACAddress: snap.PrimaryMAC,
			Platform:   snap.Platform,
			Kernel:     snap.Kernel,
			Interfaces: snap.InterfacesJSON(),
		}
		if err := s.repo.CreateSystemInfo(info); err != nil {
			s.storeError("sysinfo", err)
		}
	}

	s.log.WithFields(map[string]interface{}{
		"session": session.ID,
		"project": projectID,
		"task":    taskID,
	}).Info("clocked in")

	return session, nil
}

// ClockOut closes the open session and computes its duration
func (s *Service) ClockOut() (*models.Session, error) {
	open, err := s.repo.GetOpenSession()
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenSession
	}

	now := time.Now()
	open.EndedAt = &now
	open.DurationSeconds = int64(now.Sub(open.StartedAt).Seconds())

	if err := s.repo.UpdateSession(open); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"session":  open.ID,
		"duration": open.DurationSeconds,
	}).Info("clocked out")

	return open, nil
}

// Active returns the open session, nil when clocked out
func (s *Service) Active() (*models.Session, error) {
	return s.repo.GetOpenSession()
}

// LogClosedSession stores an externally tracked, already-finished session.
// Used by the timelog API endpoint, where the client did the timing.
func (s *Service) LogClosedSession(projectID, taskID uint, start, end time.Time, duration int64, ipAddress, macAddress string, screenshotPermission bool) (*models.Session, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end time %v is before start time %v", end, start)
	}
	if duration <= 0 {
		duration = int64(end.Sub(start).Seconds())
	}

	if _, err := s.repo.GetProjectByID(projectID); err != nil {
		return nil, fmt.Errorf("unknown project %d: %w", projectID, err)
	}
	task, err := s.repo.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("unknown task %d: %w", taskID, err)
	}
	if task.ProjectID != projectID {
		return nil, fmt.Errorf("task %d does not belong to project %d", taskID, projectID)
	}

	session := &models.Session{
		ProjectID:            projectID,
		TaskID:               taskID,
		StartedAt:            start,
		EndedAt:              &end,
		DurationSeconds:      duration,
		IPAddress:            ipAddress,
		MACAddress:           macAddress,
		ScreenshotPermission: screenshotPermission,
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// AttachScreenshot stores a screenshot record for a session. The file is
// expected to already exist at info.Path.
func (s *Service) AttachScreenshot(sessionID uint, info *screen.FileInfo, uploaded bool) (*models.Screenshot, error) {
	shot := &models.Screenshot{
		SessionID: sessionID,
		Timestamp: time.Now(),
		FilePath:  info.Path,
		Format:    info.Format,
		Width:     info.Width,
		Height:    info.Height,
		ByteSize:  info.ByteSize,
		Uploaded:  uploaded,
	}
	if err := s.repo.CreateScreenshot(shot); err != nil {
		return nil, err
	}
	return shot, nil
}

// Start runs the periodic capture loop until the context is cancelled or
// Stop is called. Screenshots are only taken while a session is open.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("tracker is already running")
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.log.WithFields(map[string]interface{}{
		"interval": s.config.Tracker.CaptureInterval.String(),
	}).Info("starting tracker")

	ticker := time.NewTicker(s.config.Tracker.CaptureInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("tracker stopped by context")
			return ctx.Err()

		case <-s.stopChan:
			s.log.Info("tracker stopped")
			return nil

		case <-ticker.C:
			if err := s.captureOnce(); err != nil {
				s.storeError("capture", err)
			}
		}
	}
}

// Stop signals the capture loop to exit. Safe to call more than once and
// from a different goroutine than Start.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.stopChan)
	}
}

func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// HasCaptureBackend reports whether periodic screenshots can be taken at all
func (s *Service) HasCaptureBackend() bool {
	return s.grabber != nil
}

// PermissionProbe takes and discards a test capture, the way the desktop
// client asked the OS for screen-recording permission.
func (s *Service) PermissionProbe() bool {
	if s.grabber == nil {
		return false
	}
	return screen.Probe(s.grabber)
}

// captureOnce grabs a screenshot for the open session, if any
func (s *Service) captureOnce() error {
	open, err := s.repo.GetOpenSession()
	if err != nil {
		return err
	}
	if open == nil {
		return nil
	}
	if s.grabber == nil {
		return nil
	}

	img, err := s.grabber.Capture()
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}

	dir, err := s.screenshotDir()
	if err != nil {
		return err
	}

	info, err := screen.Save(img, dir, s.config.Tracker.CompressQuality)
	if err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}

	if _, err := s.AttachScreenshot(open.ID, info, false); err != nil {
		return err
	}

	s.log.WithFields(map[string]interface{}{
		"session": open.ID,
		"file":    info.Path,
		"format":  info.Format,
		"bytes":   info.ByteSize,
	}).Info("screenshot captured")

	return nil
}

func (s *Service) screenshotDir() (string, error) {
	if s.config.Tracker.ScreenshotDir != "" {
		return s.config.Tracker.ScreenshotDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "timeclock", "screenshots"), nil
}

func (s *Service) storeError(component string, err error) {
	errorLog := &models.ErrorLog{
		Timestamp: time.Now(),
		Component: component,
		ErrorMsg:  err.Error(),
	}

	if dbErr := s.repo.CreateErrorLog(errorLog); dbErr != nil {
		s.log.WithFields(map[string]interface{}{
			"component": component,
			"db_error":  dbErr.Error(),
		}).Errorf("failed to store error in database: %v", err)
	} else {
		s.log.WithFields(map[string]interface{}{
			"component": component,
		}).Errorf("error logged to database: %v", err)
	}
}
