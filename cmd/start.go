package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timeclock/internal/daemon"
	"timeclock/internal/logger"
	"timeclock/internal/server"
	"timeclock/internal/tracker"
	"timeclock/pkg/capture"
)

func newStartCmd(app *app) *cobra.Command {
	var (
		foreground bool
		port       int
		interval   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the tracking daemon and dashboard",
		Long:  "Starts the background daemon that takes periodic screenshots while a session is open and serves the dashboard and HTTP API. Use --foreground to keep it attached to the terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval > 0 {
				if err := app.cfg.SetCaptureInterval(interval); err != nil {
					return err
				}
			}

			d := daemon.New(app.cfg.Daemon.PIDFile)
			running, pid, err := d.IsRunning()
			if err != nil {
				return err
			}
			if running {
				return fmt.Errorf("daemon is already running (pid %d)", pid)
			}

			if !foreground && !daemon.IsChild() {
				childPID, err := d.Daemonize(app.cfg.Daemon.LogFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Daemon started (pid %d), logging to %s\n",
					childPID, app.cfg.Daemon.LogFile)
				return nil
			}

			return runDaemon(app, d, port)
		},
	}

	cmd.Flags().BoolVar(&foreground, "foreground", false, "Run attached to the terminal instead of daemonizing")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override the dashboard port")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Override the screenshot capture interval")
	return cmd
}

func runDaemon(app *app, d *daemon.Daemon, port int) error {
	log := app.log
	if daemon.IsChild() {
		fileLog, err := logger.NewWithFile(app.cfg.Daemon.LogFile)
		if err != nil {
			return err
		}
		defer fileLog.Close()
		log = fileLog
	}

	if err := d.WritePID(); err != nil {
		return err
	}
	defer d.RemovePID()

	repo, cleanup, err := app.openRepo()
	if err != nil {
		return err
	}
	defer cleanup()

	grabber, err := capture.New()
	if err != nil {
		log.Warnf("No screenshot backend available: %v", err)
		grabber = nil
	} else {
		defer grabber.Close()
	}

	svc := tracker.NewService(app.cfg, repo, grabber, log)
	srv := server.NewServer(app.cfg, repo, svc, log, port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		if err := svc.Start(ctx); err != nil && err != context.Canceled {
			errCh <- err
		}
	}()
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	log.WithFields(map[string]interface{}{
		"pid":     os.Getpid(),
		"address": srv.GetAddress(),
	}).Info("daemon running")

	select {
	case err := <-errCh:
		stop()
		svc.Stop()
		return err
	case <-ctx.Done():
	}

	svc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("daemon stopped")
	return nil
}
