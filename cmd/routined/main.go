package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"routined/internal/config"
	"routined/internal/engine"
	"routined/internal/logger"
	"routined/internal/model"
	"routined/internal/notify"
	"routined/internal/service"
	"routined/internal/storage"
	"routined/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "routined failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return err
	}

	notifier := notify.FileNotifier{Path: cfg.Database.Path + ".changed"}
	svc := service.New(repo, engine.New(model.NewCalendar(loc)), notifier, log)

	program := tea.NewProgram(update.NewModel(svc, time.Now))

	// The due-list is keyed by the calendar day, so it goes stale the
	// moment the day ticks over while the program is running.
	rollover := cron.New(cron.WithLocation(loc))
	if _, err := rollover.AddFunc("@midnight", func() {
		program.Send(update.DayRolledOverMsg{})
	}); err != nil {
		return fmt.Errorf("scheduling midnight rollover: %w", err)
	}
	rollover.Start()
	defer rollover.Stop()

	log.Info("starting",
		zap.String("db", cfg.Database.Path),
		zap.String("timezone", loc.String()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
