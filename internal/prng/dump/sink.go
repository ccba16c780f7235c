package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sink receives key:value lines.
type Sink interface {
	Put(key, value string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(key, value string) error

// Put calls f.
func (f SinkFunc) Put(key, value string) error { return f(key, value) }

// TextSink writes "key:value\n" lines to an io.Writer.
type TextSink struct {
	w io.Writer
}

// NewTextSink returns a sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Put writes one line.
func (s *TextSink) Put(key, value string) error {
	if _, err := fmt.Fprintf(s.w, "%s:%s\n", key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// MultiSink fans each line out to every sink, stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	active := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return SinkFunc(func(key, value string) error {
		for _, s := range active {
			if err := s.Put(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Line is one decoded key:value pair.
type Line struct {
	Key   string
	Value string
}

// ReadLines splits a transcript into lines. Blank lines are skipped.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: line %d has no key", ErrMalformed, n)
		}
		lines = append(lines, Line{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// ErrNoRecord indicates a transcript without a complete state block.
var ErrNoRecord = errors.New("no state block found")

// LastRecord decodes the trailing state block of a transcript.
func LastRecord(lines []Line) (Record, error) {
	n := len(recordKeys)
	for end := len(lines); end >= n; end-- {
		if lines[end-1].Key != KeyIdxXor {
			continue
		}
		return ParseRecord(lines[end-n : end])
	}
	return Record{}, ErrNoRecord
}
