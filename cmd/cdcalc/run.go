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

	"github.com/kula-app/cdcalc/internal/config"
	"github.com/kula-app/cdcalc/internal/leda"
	"github.com/kula-app/cdcalc/internal/loader"
	"github.com/kula-app/cdcalc/internal/logging"
	"github.com/kula-app/cdcalc/internal/survey"
)

// errMissingFile is returned when no input file is given on the command line
var errMissingFile = errors.New("missing file argument")

// The run function is like the main function, except that it takes in operating system fundamentals as arguments, and returns an error.
//
// If the run function finishes without an error, the report has been written to stdout.
// Lookups that fail for individual objects do not make run fail.
func run(ctx context.Context, args []string, getenv func(key string) string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %s <file>\n\n", flags.Name())
		fmt.Fprintln(flags.Output(), "Reads object names from the first column of a ';' separated file,")
		fmt.Fprintln(flags.Output(), "looks up their distance in HyperLeda and reports the most distant one.")
	}
	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if flags.NArg() < 1 {
		return errMissingFile
	}
	inputPath := flags.Arg(0)

	// Cancel on interrupt so an in-flight request is abandoned and the partial
	// report is still printed.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.FromEnv(getenv)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(logging.NewTerminalHandler(stderr, level))

	logger.Debug("configuration loaded",
		"endpoint", cfg.Endpoint,
		"timeout", cfg.Timeout,
		"log_level", cfg.LogLevel,
		"input", inputPath)

	objects, err := loader.ReadObjects(inputPath)
	if err != nil {
		return err
	}
	logger.Debug("objects loaded", "count", len(objects))

	client := leda.NewClient(cfg.Endpoint, cfg.Timeout, cfg.UserAgent, logger)
	surveyor := survey.NewSurveyor(client, logger, stdout)

	fmt.Fprint(stdout, "Querying online database")
	summary, surveyErr := surveyor.Run(ctx, objects)
	fmt.Fprintln(stdout)

	if err := summary.Report(stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if summary.Failed > 0 {
		logger.Warn("some lookups failed", "failed", summary.Failed, "objects", summary.Count)
	}

	if surveyErr != nil {
		return fmt.Errorf("survey interrupted: %w", surveyErr)
	}
	return nil
}
