package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/transfer-feed/internal/app"
	"github.com/rovshanmuradov/transfer-feed/internal/config"
	"github.com/rovshanmuradov/transfer-feed/internal/logger"
	"github.com/rovshanmuradov/transfer-feed/internal/ui"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/screen"
	"golang.org/x/sync/errgroup"
)

const updateBuffer = 64

func main() {
	configPath := flag.String("config", "", "Path to config file (json, yaml or toml)")
	plain := flag.Bool("plain", false, "Print transfers as plain text instead of the TUI")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *plain {
		err = runPlain(rootCtx, cfg)
	} else {
		err = runTUI(rootCtx, cfg)
	}
	if err != nil {
		log.Fatalf("Transfer feed failed: %v", err)
	}
}

func runPlain(ctx context.Context, cfg *config.Config) error {
	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	runner := app.NewRunner(cfg, ui.NewPlainRenderer(os.Stdout), appLogger)
	defer runner.Shutdown()

	return runner.Run(ctx)
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	logs := logger.NewLogBuffer(cfg.LogBufferSize)
	logFile, err := logger.OpenFileSink(cfg.LogFile, time.Second)
	if err != nil {
		return err
	}
	defer logFile.Close()

	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, logs, logFile)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	updates := make(chan tea.Msg, updateBuffer)
	sender := ui.NewUpdateSender(updates, appLogger)
	defer sender.Close()

	runner := app.NewRunner(cfg, sender, appLogger)
	defer runner.Shutdown()

	model := NewAppModel(updates, logs, screen.TransfersOptions{
		Refresher: runner.Poller(),
		Exporter:  runner.Exporter(),
		ExportDir: cfg.ExportDir,
	})

	// Quitting the TUI stops the poller as well
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return ui.RunProgram(gctx, model, appLogger, tea.WithAltScreen(), tea.WithMouseCellMotion())
	})
	return g.Wait()
}
