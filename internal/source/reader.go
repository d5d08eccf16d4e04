// Package source supplies NMEA log lines from files, serial receivers and
// gpsd as pull-based sequences.
package source

import (
	"bufio"
	"io"
	"iter"
	"os"
	"strings"
)

// maxLineBytes bounds a single line. NMEA sentences are at most 82 bytes,
// but captured logs can carry binary noise between sentences.
const maxLineBytes = 64 * 1024

// Reader yields the non-blank lines of an io.Reader with surrounding
// whitespace (including CR from CRLF logs) removed.
type Reader struct {
	s   *bufio.Scanner
	err error
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 256), maxLineBytes)
	return &Reader{s: s}
}

// Lines returns a single-use sequence over the remaining lines. Stopping
// early leaves the rest of the input unread.
func (rr *Reader) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for rr.s.Scan() {
			line := strings.TrimSpace(rr.s.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
		rr.err = rr.s.Err()
	}
}

// Err reports the first read error, if any, once Lines has been exhausted.
func (rr *Reader) Err() error {
	return rr.err
}

// Take stops seq after n lines. n <= 0 means no limit.
func Take(seq iter.Seq[string], n int) iter.Seq[string] {
	if n <= 0 {
		return seq
	}
	return func(yield func(string) bool) {
		i := 0
		for line := range seq {
			if !yield(line) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// Concat yields every line of each sequence in turn.
func Concat(seqs ...iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seq := range seqs {
			for line := range seq {
				if !yield(line) {
					return
				}
			}
		}
	}
}

// OpenFile opens a log file for reading. "-" is stdin, which is never closed.
func OpenFile(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
