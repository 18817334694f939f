package main

import (
	"codeberg.org/miketth/akd/pkg/akd"
	"codeberg.org/miketth/akd/pkg/config"
	"codeberg.org/miketth/akd/pkg/status"
	"codeberg.org/miketth/akd/pkg/x11"
	"codeberg.org/miketth/akd/pkg/xkblayouts"
	"codeberg.org/miketth/akd/pkg/xkbsymbols"
	"context"
	"errors"
	"fmt"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "akd",
		Short:         "Keyboard daemon that remembers the layout and group of every window",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := config.RegisterFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(flags)
	}

	return cmd
}

func run(flags *config.Flags) error {
	cfg, err := config.Load(flags.Settings)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	flags.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(flags.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer, err := newPrinter(flags)
	if err != nil {
		return err
	}

	conn, err := x11.Connect(x11.Setxkbmap{}, log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	symbols, err := conn.CurrentSymbols()
	if err != nil {
		return fmt.Errorf("get current symbols: %w", err)
	}
	log.Debugw("server symbols", "groups", symbols.Groups, "options", symbols.Options)

	tracker, err := akd.NewTracker(conn, newLayoutSet(cfg, symbols), cfg.TrackerOptions(), printer, log)
	if err != nil {
		return fmt.Errorf("start tracker: %w", err)
	}

	if shortcut := cfg.Shortcuts.NextLayout; shortcut != "" {
		if err := tracker.BindNextLayoutShortcut(shortcut); err != nil {
			return fmt.Errorf("bind next layout shortcut: %w", err)
		}
	}

	log.Info("started akd")

	errChan := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := tracker.ProcessEvents(ctx)
		if err != nil {
			errChan <- fmt.Errorf("process events: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		stop()
		wg.Wait()
		return nil
	case err != nil:
		return err
	}

	return nil
}

func newLayoutSet(cfg config.Config, symbols xkbsymbols.Symbols) *akd.LayoutSet {
	if len(cfg.General.Layouts) == 0 {
		return akd.ServerLayoutSet(symbols.Groups, symbols.Options)
	}
	return akd.NewLayoutSet(cfg.General.Layouts, symbols.Options)
}

func newPrinter(flags *config.Flags) (*status.Printer, error) {
	if !flags.DescribeGroups {
		return status.NewPrinter(os.Stdout, nil), nil
	}

	registry, err := xkblayouts.ParseRegistry(flags.EvdevXMLPath)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	return status.NewPrinter(os.Stdout, registry), nil
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Tracking keyboard groups per window")

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	// stdout carries the group status lines
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
