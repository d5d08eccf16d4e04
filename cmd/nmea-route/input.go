package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"nmea-route/internal/config"
	"nmea-route/internal/source"
)

// lineSet is every opened input, read in order.
type lineSet struct {
	readers []*source.Reader
	closers []io.Closer
	stop    func() bool
}

func (ls *lineSet) Lines() iter.Seq[string] {
	seqs := make([]iter.Seq[string], 0, len(ls.readers))
	for _, r := range ls.readers {
		seqs = append(seqs, r.Lines())
	}
	return source.Concat(seqs...)
}

func (ls *lineSet) Err() error {
	var errs []error
	for _, r := range ls.readers {
		if err := r.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ls *lineSet) Close() {
	if ls.stop != nil {
		ls.stop()
	}
	for _, c := range ls.closers {
		_ = c.Close()
	}
}

func (ls *lineSet) add(rc io.ReadCloser) {
	ls.readers = append(ls.readers, source.NewReader(rc))
	ls.closers = append(ls.closers, rc)
}

func openLines(ctx context.Context, in config.InputConfig, logger *log.Logger) (*lineSet, error) {
	ls := &lineSet{}
	switch in.Source {
	case config.SourceSerial:
		device := in.Device
		if device == "" {
			device = source.AutoDetectDevice()
			if device == "" {
				return nil, fmt.Errorf("serial auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
			}
		}
		f, err := source.OpenSerial(device, in.Baud)
		if err != nil {
			return nil, fmt.Errorf("serial open failed device=%s baud=%d: %w", device, in.Baud, err)
		}
		logger.Info("reading serial", "device", device, "baud", in.Baud, "max_lines", in.MaxLines)
		ls.add(f)
	case config.SourceGPSD:
		conn, err := source.DialGPSD(ctx, in.GPSDAddr)
		if err != nil {
			return nil, fmt.Errorf("gpsd dial failed addr=%s: %w", in.GPSDAddr, err)
		}
		logger.Info("reading gpsd", "addr", in.GPSDAddr, "max_lines", in.MaxLines)
		ls.add(conn)
	default:
		for _, p := range in.Paths {
			f, err := source.OpenFile(p)
			if err != nil {
				ls.Close()
				return nil, err
			}
			logger.Debug("reading file", "path", p)
			ls.add(f)
		}
	}

	// Unblock a pending read on a live source when the context ends.
	closers := ls.closers
	ls.stop = context.AfterFunc(ctx, func() {
		for _, c := range closers {
			_ = c.Close()
		}
	})
	return ls, nil
}
