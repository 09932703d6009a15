package database

import (
	"fmt"
	"time"

	"timeclock/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for sessions, screenshots and
// the project/task catalog
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateSession inserts a new work session into the database
func (r *Repository) CreateSession(session *models.Session) error {
	result := r.db.Create(session)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert session")
	}
	return nil
}

// GetSessionByID retrieves a session by its ID
func (r *Repository) GetSessionByID(id uint) (*models.Session, error) {
	var session models.Session
	result := r.db.First(&session, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get session")
	}
	return &session, nil
}

// GetOpenSession retrieves the session that has not been clocked out yet, or
// nil if there is none. Only one session is ever open at a time; when stale
// data violates that, the most recent one wins.
func (r *Repository) GetOpenSession() (*models.Session, error) {
	var session models.Session
	result := r.db.Where("ended_at IS NULL").Order("started_at DESC").First(&session)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get open session")
	}
	return &session, nil
}

// UpdateSession updates an existing session
func (r *Repository) UpdateSession(session *models.Session) error {
	result := r.db.Save(session)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update session")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// GetSessionsSince retrieves all sessions started since a given time
func (r *Repository) GetSessionsSince(since time.Time) ([]*models.Session, error) {
	var sessions []*models.Session
	result := r.db.Where("started_at >= ?", since).Order("started_at ASC").Find(&sessions)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query sessions")
	}
	return sessions, nil
}

// GetProjectSummarySince returns aggregated per-project time for closed
// sessions since a given time. SQL does the SUM; the reporter derives
// percentages at runtime.
func (r *Repository) GetProjectSummarySince(since time.Time) ([]models.ProjectSummary, error) {
	var summaries []models.ProjectSummary

	result := r.db.Model(&models.Session{}).
		Select("sessions.project_id, projects.name AS project_name, SUM(sessions.duration_seconds) AS total_seconds, COUNT(*) AS session_count").
		Joins("JOIN projects ON projects.id = sessions.project_id").
		Where("sessions.started_at >= ? AND sessions.ended_at IS NOT NULL", since).
		Group("sessions.project_id, projects.name").
		Order("total_seconds DESC").
		Scan(&summaries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query project summary")
	}

	return summaries, nil
}

// DeleteOldSessions deletes sessions older than a specified date (soft delete)
func (r *Repository) DeleteOldSessions(before time.Time) (int64, error) {
	result := r.db.Where("started_at < ?", before).Delete(&models.Session{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old sessions")
	}
	return result.RowsAffected, nil
}

// CreateScreenshot inserts a screenshot record
func (r *Repository) CreateScreenshot(shot *models.Screenshot) error {
	result := r.db.Create(shot)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert screenshot")
	}
	return nil
}

// GetScreenshotsBySession retrieves all screenshots captured during a session
func (r *Repository) GetScreenshotsBySession(sessionID uint) ([]*models.Screenshot, error) {
	var shots []*models.Screenshot
	result := r.db.Where("session_id = ?", sessionID).Order("timestamp ASC").Find(&shots)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query screenshots")
	}
	return shots, nil
}

// GetLatestScreenshot retrieves the most recent screenshot, nil when none exist
func (r *Repository) GetLatestScreenshot() (*models.Screenshot, error) {
	var shot models.Screenshot
	result := r.db.Order("timestamp DESC").First(&shot)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest screenshot")
	}
	return &shot, nil
}

// CreateSystemInfo inserts a system-info snapshot
func (r *Repository) CreateSystemInfo(info *models.SystemInfo) error {
	result := r.db.Create(info)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert system info")
	}
	return nil
}

// CreateProject inserts a new project
func (r *Repository) CreateProject(project *models.Project) error {
	result := r.db.Create(project)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert project")
	}
	return nil
}

// GetProjectByID retrieves a project by ID
func (r *Repository) GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	result := r.db.First(&project, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get project")
	}
	return &project, nil
}

// GetProjectByName retrieves a project by its unique name
func (r *Repository) GetProjectByName(name string) (*models.Project, error) {
	var project models.Project
	result := r.db.Where("name = ?", name).First(&project)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get project")
	}
	return &project, nil
}

// ListProjects retrieves all projects with their tasks preloaded
func (r *Repository) ListProjects() ([]*models.Project, error) {
	var projects []*models.Project
	result := r.db.Preload("Tasks").Order("name ASC").Find(&projects)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to list projects")
	}
	return projects, nil
}

// CreateTask inserts a new task under a project
func (r *Repository) CreateTask(task *models.Task) error {
	if _, err := r.GetProjectByID(task.ProjectID); err != nil {
		return errors.Wrap(err, "task references unknown project")
	}
	result := r.db.Create(task)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert task")
	}
	return nil
}

// GetTaskByID retrieves a task by ID
func (r *Repository) GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task
	result := r.db.First(&task, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get task")
	}
	return &task, nil
}

// GetTaskByName retrieves a task by name within a project
func (r *Repository) GetTaskByName(projectID uint, name string) (*models.Task, error) {
	var task models.Task
	result := r.db.Where("project_id = ? AND name = ?", projectID, name).First(&task)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get task")
	}
	return &task, nil
}

// ListTasks retrieves tasks, optionally filtered by project
func (r *Repository) ListTasks(projectID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	q := r.db.Order("name ASC")
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	result := q.Find(&tasks)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to list tasks")
	}
	return tasks, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Clear removes all tracking data. The project/task catalog is kept.
func (r *Repository) Clear() error {
	for _, table := range []string{"screenshots", "system_infos", "sessions"} {
		result := r.db.Exec("DELETE FROM " + table)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "failed to clear %s", table)
		}
	}
	return nil
}
