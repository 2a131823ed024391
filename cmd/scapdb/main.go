// Scapdb scans a directory of SCAP Security Guide content and writes a JSON
// database of the profiles, rules, and parameters of every datastream found.
//
//	scapdb [flags] [root]
//
// Flags:
//
//	-root dir       SCAP content directory to scan (default /opt)
//	-o file         output file; "-" for stdout, .gz/.zst/.xz are compressed
//	-j N            number of datastreams to extract concurrently
//	-skip-invalid   skip malformed datastreams instead of failing
//	-validate       validate the output against the database schema
//	-metrics file   write prometheus metrics to file on exit
//	-config file    TOML file with default settings
//	-v              debug logging
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quay/claircore/toolkit/log"

	"github.com/quay/scapdb/builder"
	"github.com/quay/scapdb/jsonblob"
)

func main() {
	var exit int
	defer func() {
		if exit != 0 {
			os.Exit(exit)
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := parseConfig(os.Args[0], os.Args[1:], os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return
	case errors.Is(err, errUsage):
		exit = 99
		return
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		exit = 99
		return
	}

	lvl := slog.LevelInfo
	if cfg.Verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(log.WrapHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))))

	if err := run(ctx, cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "scapdb: %v\n", err)
		exit = 1
	}
}

// Run builds the database described by cfg and writes it out. Progress and
// the summary go to stdout, unless stdout is the output.
func run(ctx context.Context, cfg *config, stdout io.Writer) (err error) {
	console := stdout
	if cfg.Output == "-" {
		console = os.Stderr
	}
	if cfg.Metrics != "" {
		defer func() {
			if mErr := prometheus.WriteToTextfile(cfg.Metrics, prometheus.DefaultGatherer); mErr != nil {
				err = errors.Join(err, fmt.Errorf("unable to write metrics %q: %w", cfg.Metrics, mErr))
			}
		}()
	}

	fmt.Fprintf(console, "Scanning SCAP content in: %s\n", cfg.Root)
	db, err := builder.New(cfg.builderOptions()).Build(ctx, cfg.Root)
	if err != nil {
		return err
	}

	var w io.WriteCloser
	if cfg.Output == "-" {
		w = nopCloser{stdout}
	} else {
		w, err = jsonblob.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("unable to create output %q: %w", cfg.Output, err)
		}
	}
	var buf bytes.Buffer
	out := io.Writer(w)
	if cfg.Validate {
		out = io.MultiWriter(w, &buf)
	}
	err = jsonblob.Store(ctx, out, db)
	if cErr := w.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return fmt.Errorf("unable to write output %q: %w", cfg.Output, err)
	}
	if cfg.Validate {
		if err := jsonblob.Validate(ctx, buf.Bytes()); err != nil {
			return fmt.Errorf("output %q: %w", cfg.Output, err)
		}
		slog.InfoContext(ctx, "output validated", "path", cfg.Output)
	}

	return writeSummary(console, cfg.Output, db)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
