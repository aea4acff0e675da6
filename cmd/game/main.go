package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/term"

	"github.com/tomz197/debugbird/internal/audio"
	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/game"
	"github.com/tomz197/debugbird/internal/logging"
	"github.com/tomz197/debugbird/internal/loop"
	"github.com/tomz197/debugbird/internal/portfolio"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// run plays the page until the player quits. Deferred cleanup, the log file
// included, finishes before main decides the exit code.
func run(args []string) error {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	backend := fs.String("backend", config.GetEnv("BACKEND", "tcell"), "terminal backend: tcell or ansi")
	tuningPath := fs.String("tuning", config.GetEnv("TUNING_FILE", ""), "YAML tuning file")
	sound := fs.Bool("audio", config.GetEnvBool("AUDIO", false), "play sound effects")
	volume := fs.Float64("volume", 0.5, "sound volume in [0,1]")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, closeLog, err := logging.OpenFile(config.GetEnv("LOG_FILE", ""), config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	tuning, err := config.LoadTuning(*tuningPath)
	if err != nil {
		logger.Error("failed to load tuning", "err", err)
		return fmt.Errorf("load tuning: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sounds game.Sounds
	if *sound {
		player := audio.NewPlayer(*volume, logger)
		if err := player.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
		defer player.Close()
		sounds = player
	}

	opts := loop.Options{
		Page: portfolio.Options{
			Tuning:  tuning,
			Content: portfolio.DefaultContent(),
			Sounds:  sounds,
		},
		Logger: logger,
	}

	switch *backend {
	case "tcell":
		err = runScreen(ctx, opts)
	case "ansi":
		err = runANSI(ctx, opts)
	default:
		err = fmt.Errorf("unknown backend %q", *backend)
	}
	if err != nil {
		logger.Error("game stopped", "err", err)
		return err
	}
	return nil
}

func runScreen(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	return loop.RunScreen(ctx, screen, opts)
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

	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
}
