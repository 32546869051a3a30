package feed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"matrix-render/internal/event"
)

// MaxLineBytes bounds a single JSONL line.
const MaxLineBytes = 1024 * 1024

// Item is one decoded line of the feed. Err is set when the line could not be
// decoded; Event is nil in that case.
type Item struct {
	Line  int
	Event event.Event
	Err   error
}

type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, MaxLineBytes)
	return &Reader{scanner: scanner}
}

// Next returns the next non-blank line. It returns io.EOF once the input is
// exhausted, or the scanner's error if reading failed.
func (r *Reader) Next() (Item, error) {
	if r == nil || r.scanner == nil {
		return Item{}, errors.New("feed reader is nil")
	}
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		evt, err := event.Decode([]byte(line))
		if err != nil {
			return Item{Line: r.line, Err: fmt.Errorf("line %d: %w", r.line, err)}, nil
		}
		return Item{Line: r.line, Event: evt}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Item{}, err
	}
	return Item{}, io.EOF
}

// ReadAll drains r. Lines that fail to decode are kept as items with Err set.
func (r *Reader) ReadAll() ([]Item, error) {
	var out []Item
	for {
		item, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
}

// Open opens path for reading; "-" or "" means stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
