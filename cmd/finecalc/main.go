package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/josh-kwaku/library-fines/internal/config"
	"github.com/josh-kwaku/library-fines/internal/domain"
	"github.com/josh-kwaku/library-fines/internal/fine"
	"github.com/josh-kwaku/library-fines/internal/intake"
	"github.com/josh-kwaku/library-fines/internal/logging"
	"github.com/josh-kwaku/library-fines/internal/runner"
)

func main() {
	inPath := flag.String("in", "", "read cases from this file instead of stdin")
	format := flag.String("format", "text", "output format: text or json")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Init(os.Stderr, "finecalc", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *inPath, *format, cfg.CurrencyLabel, os.Stdin, os.Stdout); err != nil {
		slog.Error("finecalc failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inPath, format, currencyLabel string, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer f.Close()
		in = f
	}

	var emit func(runner.Result) error
	switch format {
	case "text":
		emit = runner.NewTextWriter(stdout, currencyLabel).Write
	case "json":
		emit = runner.NewJSONWriter(stdout, currencyLabel).Write
	default:
		return fmt.Errorf("run: unknown format %q", format)
	}

	rd, err := intake.NewReader(in)
	if errors.Is(err, domain.ErrMissingCaseCount) {
		fmt.Fprintln(stdout, "Missing number of test cases.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	r := runner.New(fine.NewCalculator(fine.DefaultRules()))
	err = r.Run(ctx, rd, emit)
	if errors.Is(err, domain.ErrIncompleteRecord) {
		fmt.Fprintln(stdout, "Invalid or incomplete test case input.")
		return nil
	}
	return err
}
