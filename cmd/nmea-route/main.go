package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"nmea-route/internal/config"
	"nmea-route/internal/route"
	"nmea-route/internal/source"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "nmea-route: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("nmea-route", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.StringP("config", "c", "", "Path to YAML config.")
	src := fs.String("source", "", "Line source: file, serial or gpsd.")
	device := fs.StringP("device", "d", "", "Serial device for --source=serial. Empty to auto-detect.")
	baud := fs.IntP("baud", "b", 0, "Serial baud rate.")
	gpsdAddr := fs.String("gpsd", "", "gpsd host:port for --source=gpsd.")
	maxLines := fs.IntP("max-lines", "n", 0, "Stop after this many lines. Required for serial and gpsd.")
	format := fs.StringP("format", "f", "", "Output format: text or json.")
	utm := fs.Bool("utm", false, "Include UTM coordinates in the output.")
	noSummary := fs.Bool("no-summary", false, "Do not print the route summary.")
	level := fs.StringP("log-level", "l", "", "Log level: debug, info, warn or error.")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Build a route from NMEA-0183 GPS logs.\n\n")
		fmt.Fprintf(stderr, "Usage: nmea-route [options] [file ...]\n\n")
		fmt.Fprintf(stderr, "Files default to stdin (\"-\").\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
	}
	if fs.Changed("source") {
		cfg.Input.Source = *src
	}
	if fs.Changed("device") {
		cfg.Input.Device = *device
	}
	if fs.Changed("baud") {
		cfg.Input.Baud = *baud
	}
	if fs.Changed("gpsd") {
		cfg.Input.GPSDAddr = *gpsdAddr
	}
	if fs.Changed("max-lines") {
		cfg.Input.MaxLines = *maxLines
	}
	if fs.Changed("format") {
		cfg.Output.Format = *format
	}
	if fs.Changed("utm") {
		cfg.Output.UTM = *utm
	}
	if fs.Changed("no-summary") {
		show := !*noSummary
		cfg.Output.Summary = &show
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = *level
	}
	if fs.NArg() > 0 {
		cfg.Input.Paths = fs.Args()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Log.Level)

	lines, err := openLines(ctx, cfg.Input, logger)
	if err != nil {
		return err
	}
	defer lines.Close()

	acc := route.NewAccumulator(route.WithLogger(logger))
	for line := range source.Take(lines.Lines(), cfg.Input.MaxLines) {
		if ctx.Err() != nil {
			break
		}
		acc.Add(line)
	}
	if err := lines.Err(); err != nil && ctx.Err() == nil {
		logger.Warn("input ended early", "err", err)
	}

	r := acc.Route()
	st := acc.Stats()
	logger.Info("route built", "positions", r.Len(), "skipped", st.Skipped())

	return writeRoute(stdout, r, st, cfg.Output)
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "nmea-route"})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
