package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grdn/statfuse/internal/adapters/source"
	app "github.com/grdn/statfuse/internal/app"
	"github.com/grdn/statfuse/internal/config"
	"github.com/grdn/statfuse/internal/domain/aggregate"
	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/scoring"
	"github.com/grdn/statfuse/internal/export"
	"github.com/grdn/statfuse/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	opts := []app.Option{
		app.WithProducers(source.NewPFR(), source.NewFDB()),
		app.WithSeasonRange(cfg.StartYear, cfg.EndYear),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithLogger(log.Named("engine")),
	}
	if len(cfg.FantasySettings) > 0 {
		opts = append(opts, app.WithScoringRule(scoring.DefaultRule().Override(cfg.FantasySettings)))
	}
	if cfg.TableType != config.TableComprehensive {
		opts = append(opts, app.WithTables(model.TableType(cfg.TableType)))
	}
	if cfg.Threshold.Window > 0 {
		opts = append(opts, app.WithThreshold(aggregate.Threshold{
			Stat:     cfg.Threshold.Stat,
			Min:      cfg.Threshold.Min,
			Window:   cfg.Threshold.Window,
			Position: cfg.Threshold.Position,
		}))
	}

	engine := app.New(opts...)
	result, err := engine.Run(ctx)
	if err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		os.Exit(1)
	}

	for _, diag := range result.Diagnostics {
		log.Warn(ctx, "diagnostic",
			logger.String("kind", string(diag.Kind)),
			logger.String("source", string(diag.Source)),
			logger.String("table", string(diag.Table)),
			logger.Int("season", diag.Season),
			logger.String("player", diag.Player),
			logger.String("field", diag.Field),
			logger.Error(diag.Err),
		)
	}

	out := os.Stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			log.Error(ctx, "create output file", logger.Error(err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if len(result.Qualified) > 0 || cfg.Threshold.Window > 0 {
		err = export.WriteHistories(out, result.Qualified, result.Tables)
	} else {
		err = export.WriteMerged(out, result.Merged, result.Tables)
	}
	if err != nil {
		log.Error(ctx, "write csv", logger.Error(err))
		os.Exit(1)
	}
}
