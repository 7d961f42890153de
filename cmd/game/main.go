package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/kittens/internal/audio"
	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/draw"
	"github.com/tomz197/kittens/internal/loop"
	"github.com/tomz197/kittens/internal/tui"
	"golang.org/x/term"
)

func main() {
	ansi := flag.Bool("ansi", false, "render with plain ANSI escapes instead of tcell")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(*ansi, *mute, logger); err != nil {
		logger.Error("game error", "err", err)
		closeLog()
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to KITTENS_LOG_FILE; the terminal itself is the game screen.
func newLogger() (*log.Logger, func() error, error) {
	path := config.GetEnv("KITTENS_LOG_FILE", "")
	if path == "" {
		return log.New(io.Discard), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "kittens",
	})
	return logger, f.Close, nil
}

func run(ansi, mute bool, logger *log.Logger) error {
	session, err := config.SessionFromEnv()
	if err != nil {
		return err
	}

	audioCfg, err := audio.ConfigFromEnv()
	if err != nil {
		return err
	}
	if mute {
		audioCfg.Enabled = false
	}
	sounds := audio.New(audioCfg)
	if err := sounds.Start(); err != nil {
		// Non-fatal, the game runs without sound
		logger.Warn("audio unavailable", "err", err)
	}
	defer sounds.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Session: session,
		Sounds:  sounds,
		Logger:  logger,
	}
	logger.Info("starting", "frontend", frontendName(ansi), "audio", audioCfg.Enabled)

	if ansi {
		return runANSI(ctx, opts)
	}
	return runTcell(ctx, opts)
}

func frontendName(ansi bool) string {
	if ansi {
		return "ansi"
	}
	return "tcell"
}

func runTcell(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	fe, err := tui.New(screen, opts.Session)
	if err != nil {
		return err
	}
	defer fe.Close()

	return loop.Run(ctx, fe, opts)
}

func runANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	t := loop.NewTerminal(bufio.NewReader(os.Stdin), os.Stdout, draw.DefaultTermSizeFunc, opts.Session)
	if err := t.Open(); err != nil {
		return err
	}
	defer t.Close()

	return loop.Run(ctx, t, opts)
}
