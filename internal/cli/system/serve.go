package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/logger"
	"github.com/julianstephens/ventureboard/internal/notifier"
	"github.com/julianstephens/ventureboard/internal/scheduler"
	"github.com/julianstephens/ventureboard/internal/server"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct {
	Addr        string `help:"Listen address. Defaults to :VENTUREBOARD_PORT."`
	NoScheduler bool   `help:"Serve the API without background jobs."`
	Dev         bool   `help:"Allow cross-origin requests from any localhost port."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		if ctx.Config != nil {
			addr = ctx.Config.Addr()
		} else {
			addr = fmt.Sprintf(":%d", constants.DefaultPort)
		}
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sched *scheduler.Scheduler
	if !c.NoScheduler {
		sched = scheduler.New()
		if _, err := registerJobs(sched, ctx); err != nil {
			return err
		}
		sched.Start()
	}

	srv := server.New(server.Config{
		Addr:    addr,
		Store:   ctx.Store,
		DevMode: c.Dev,
		Env:     ctx.Config,
	})
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	ctx.Printf("Serving dashboard API on %s (Ctrl+C to stop)\n", addr)

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-sigCtx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if sched != nil {
		sched.Stop()
	}
	return serveErr
}

type scheduledJob struct {
	schedule string
	job      scheduler.Job
}

// registerJobs adds the background jobs and returns how many were added.
// The backup job only runs for SQLite storage.
func registerJobs(sched *scheduler.Scheduler, ctx *cli.Context) (int, error) {
	jobs := []scheduledJob{
		{scheduler.ProductivitySchedule, scheduler.NewProductivityRefreshJob(ctx.Store, ctx.Config)},
		{scheduler.ReminderSchedule, scheduler.NewReminderNotifyJob(ctx.Store, notifier.New(), ctx.Config)},
	}
	if mgr := ctx.BackupManager(); mgr != nil {
		jobs = append(jobs, scheduledJob{scheduler.BackupSchedule, scheduler.NewBackupJob(mgr)})
	}

	for _, j := range jobs {
		if err := sched.AddJob(j.schedule, j.job); err != nil {
			return 0, fmt.Errorf("failed to schedule %s: %w", j.job.Name(), err)
		}
	}
	return len(jobs), nil
}
