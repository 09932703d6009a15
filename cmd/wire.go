package cmd

import (
	"github.com/pkg/errors"

	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/logger"
)

type app struct {
	cfg *config.Config
	log *logger.Logger
}

func wireApp() (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	return &app{
		cfg: cfg,
		log: logger.New(),
	}, nil
}

// openRepo opens the database for a single command invocation. The returned
// cleanup closes the connection.
func (a *app) openRepo() (*database.Repository, func(), error) {
	dbPath := a.cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = database.GetDefaultDBPath()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to resolve database path")
		}
	}

	db, err := database.Connect(dbPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open database")
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to migrate database")
	}

	return database.NewRepository(db), func() { _ = db.Close() }, nil
}
