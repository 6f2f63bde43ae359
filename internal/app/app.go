package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vk/dagjobs/internal/ctxlog"
	"github.com/vk/dagjobs/internal/events"
	"github.com/vk/dagjobs/internal/job"
	"github.com/vk/dagjobs/internal/scheduler"
	"github.com/vk/dagjobs/internal/workexec"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *prometheus.Registry
	metrics  *events.Metrics
	executor workexec.Executor

	ctx        context.Context
	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithExecutor replaces the work executor selected by Config.Executor.
func WithExecutor(exec workexec.Executor) Option {
	return func(a *App) {
		a.executor = exec
	}
}

// NewApp is the constructor for the main application. Job output and results
// are written to outW, logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := events.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		metrics:  metrics,
		ctx:      ctxlog.WithLogger(context.Background(), logger),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.executor == nil {
		a.executor, err = newExecutor(cfg.Executor)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("Work executor selected.", "executor", cfg.Executor)

	return a, nil
}

func newExecutor(name string) (workexec.Executor, error) {
	switch name {
	case ExecutorRandom:
		return workexec.NewRandom(), nil
	case ExecutorProcess, "":
		p, err := workexec.NewSelfProcess()
		if err != nil {
			return nil, fmt.Errorf("failed to set up process executor: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown executor %q", name)
	}
}

// Registry returns the Prometheus registry the job metrics are recorded in.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Run loads the job descriptors, runs every job and prints the results. When
// a job fails, the results of the jobs that completed are still printed and
// the error is returned.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.", "run_id", runID)

	a.startHealthcheckServer()
	defer a.closeHealthcheckServer()

	sink, closeSink, err := a.newSink(ctx, runID)
	if err != nil {
		return err
	}
	defer closeSink()

	loader, err := loaderFor(a.config.JobsPath)
	if err != nil {
		return err
	}
	descriptors, err := loader.Load(ctx, a.config.JobsPath)
	if err != nil {
		return err
	}
	a.logger.Info("Jobs loaded.", "path", a.config.JobsPath, "job_count", len(descriptors))

	sched, err := scheduler.New(ctx, descriptors, a.executor,
		scheduler.WithSink(sink),
		scheduler.WithRunID(runID),
	)
	if err != nil {
		return err
	}

	runErr := sched.Launch(ctx)
	if runErr != nil {
		var launchErr *job.LaunchError
		if errors.As(runErr, &launchErr) {
			fmt.Fprintf(a.outW, "Error: job %d crashed!\n", launchErr.JobID)
		}
	}

	if err := sched.PrintResults(a.outW); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to print results: %w", err))
	}

	a.logger.Debug("App.Run method finished.", "run_id", runID)
	return runErr
}

// newSink assembles the notification sinks for one run. The returned close
// function releases the event publisher, if any.
func (a *App) newSink(ctx context.Context, runID string) (events.Sink, func(), error) {
	sinks := events.Multi{events.NewConsole(a.outW), events.Log{}, a.metrics}
	if a.config.EventsURL == "" {
		return sinks, func() {}, nil
	}

	pub, err := events.DialSocketIO(ctx, events.SocketIOConfig{
		URL:       a.config.EventsURL,
		Namespace: a.config.EventsNamespace,
		Event:     a.config.EventsName,
		RunID:     runID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect event publisher: %w", err)
	}
	return append(sinks, pub), func() {
		if err := pub.Close(); err != nil {
			a.logger.Warn("Event publisher close failed.", "error", err)
		}
	}, nil
}
