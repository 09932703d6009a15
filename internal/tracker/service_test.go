package tracker

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/logger"
	"timeclock/internal/models"
)

type fakeGrabber struct {
	captures int
	fail     bool
}

func (f *fakeGrabber) Capture() (image.Image, error) {
	if f.fail {
		return nil, assert.AnError
	}
	f.captures++
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 251)
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img, nil
}

func (f *fakeGrabber) IsAvailable() bool     { return true }
func (f *fakeGrabber) DisplayServer() string { return "x11" }
func (f *fakeGrabber) Close() error          { return nil }

func newTestService(t *testing.T, grabberFails bool) (*Service, *database.Repository, *fakeGrabber) {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Initialize())

	repo := database.NewRepository(db)

	cfg := config.Default()
	cfg.Tracker.ScreenshotDir = t.TempDir()

	grabber := &fakeGrabber{fail: grabberFails}
	svc := NewService(cfg, repo, grabber, logger.New())
	return svc, repo, grabber
}

func seed(t *testing.T, repo *database.Repository) (*models.Project, *models.Task) {
	t.Helper()

	project := &models.Project{Name: "acme"}
	require.NoError(t, repo.CreateProject(project))
	task := &models.Task{ProjectID: project.ID, Name: "design"}
	require.NoError(t, repo.CreateTask(task))
	return project, task
}

func TestClockInClockOut(t *testing.T) {
	svc, repo, _ := newTestService(t, false)
	project, task := seed(t, repo)

	session, err := svc.ClockIn(project.ID, task.ID, "morning block")
	require.NoError(t, err)
	assert.True(t, session.Open())
	assert.Equal(t, "morning block", session.Note)
	assert.NotEmpty(t, session.Hostname, "clock-in should attach a system-info snapshot")

	active, err := svc.Active()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, session.ID, active.ID)

	closed, err := svc.ClockOut()
	require.NoError(t, err)
	assert.False(t, closed.Open())
	assert.GreaterOrEqual(t, closed.DurationSeconds, int64(0))

	active, err = svc.Active()
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestClockInTwiceFails(t *testing.T) {
	svc, repo, _ := newTestService(t, false)
	project, task := seed(t, repo)

	_, err := svc.ClockIn(project.ID, task.ID, "")
	require.NoError(t, err)

	_, err = svc.ClockIn(project.ID, task.ID, "")
	assert.ErrorIs(t, err, ErrSessionOpen)
}

func TestClockOutWithoutSessionFails(t *testing.T) {
	svc, _, _ := newTestService(t, false)

	_, err := svc.ClockOut()
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

func TestClockInValidatesCatalog(t *testing.T) {
	svc, repo, _ := newTestService(t, false)
	project, task := seed(t, repo)

	_, err := svc.ClockIn(999, task.ID, "")
	assert.Error(t, err, "unknown project")

	_, err = svc.ClockIn(project.ID, 999, "")
	assert.Error(t, err, "unknown task")

	other := &models.Project{Name: "other"}
	require.NoError(t, repo.CreateProject(other))
	_, err = svc.ClockIn(other.ID, task.ID, "")
	assert.Error(t, err, "task belongs to a different project")
}

func TestLogClosedSession(t *testing.T) {
	svc, repo, _ := newTestService(t, false)
	project, task := seed(t, repo)

	start := time.Now().Add(-time.Hour)
	end := time.Now()

	session, err := svc.LogClosedSession(project.ID, task.ID, start, end, 0, "10.0.0.7", "aa:bb:cc:dd:ee:ff", true)
	require.NoError(t, err)
	assert.False(t, session.Open())
	assert.InDelta(t, 3600, session.DurationSeconds, 2)
	assert.Equal(t, "10.0.0.7", session.IPAddress)
	assert.True(t, session.ScreenshotPermission)

	// Explicit duration wins over the computed one.
	session, err = svc.LogClosedSession(project.ID, task.ID, start, end, 1234, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), session.DurationSeconds)
	assert.False(t, session.ScreenshotPermission)

	_, err = svc.LogClosedSession(project.ID, task.ID, end, start, 0, "", "", false)
	assert.Error(t, err, "end before start")
}

func TestCaptureOnce(t *testing.T) {
	svc, repo, grabber := newTestService(t, false)
	project, task := seed(t, repo)

	// No open session: capture loop is a no-op.
	require.NoError(t, svc.captureOnce())
	assert.Equal(t, 0, grabber.captures)

	session, err := svc.ClockIn(project.ID, task.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.captureOnce())
	assert.Equal(t, 1, grabber.captures)

	shots, err := repo.GetScreenshotsBySession(session.ID)
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.NotEmpty(t, shots[0].FilePath)
	assert.Equal(t, 32, shots[0].Width)
	assert.Equal(t, 24, shots[0].Height)
}

func TestCaptureFailureLeavesNoScreenshot(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	project, task := seed(t, repo)

	session, err := svc.ClockIn(project.ID, task.ID, "")
	require.NoError(t, err)

	err = svc.captureOnce()
	assert.Error(t, err)

	shots, err := repo.GetScreenshotsBySession(session.ID)
	require.NoError(t, err)
	assert.Empty(t, shots)
}

func TestPermissionProbe(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	assert.True(t, svc.PermissionProbe())

	failing, _, _ := newTestService(t, true)
	assert.False(t, failing.PermissionProbe())

	noBackend := &Service{}
	assert.False(t, noBackend.PermissionProbe())
}

func TestStartStop(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	svc.config.Tracker.CaptureInterval = 50 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		done <- svc.Start(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	assert.True(t, svc.IsRunning())

	svc.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop")
	}
	assert.False(t, svc.IsRunning())
}

func TestConcurrentStatusChecks(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	svc.config.Tracker.CaptureInterval = 10 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		done <- svc.Start(context.Background())
	}()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				svc.IsRunning()
			}
		}()
	}
	wg.Wait()

	// Stop is safe to call more than once.
	svc.Stop()
	svc.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop")
	}
	assert.False(t, svc.IsRunning())
}

func TestStartCancelledByContext(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	svc.config.Tracker.CaptureInterval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop on context cancel")
	}
}
