package lineio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"linestore/pkg/lines"
)

// DefaultMaxLineBytes bounds a single line read from a stream.
const DefaultMaxLineBytes = 64 << 20

// ScanLines is a bufio.SplitFunc that yields one line per '\n', stripping
// exactly one terminator: "\n", or "\r\n" as a pair. A final line without a
// terminator is returned as-is, including any trailing '\r'.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line := data[:i]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		return i + 1, line, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewScanner returns a bufio.Scanner over r using ScanLines. maxLineBytes <= 0
// selects DefaultMaxLineBytes.
func NewScanner(r io.Reader, maxLineBytes int) *bufio.Scanner {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(4096, maxLineBytes)), maxLineBytes)
	sc.Split(ScanLines)
	return sc
}

// ErrRead wraps failures of the underlying stream during Decode.
var ErrRead = errors.New("read line")

// Decode appends every line of r to s in stream order and returns how many
// were appended. If an append fails, s keeps the lines appended before the
// failure and the store's error is returned.
func Decode(r io.Reader, s *lines.Store, maxLineBytes int) (int, error) {
	sc := NewScanner(r, maxLineBytes)
	n := 0
	for sc.Scan() {
		if err := s.Append(sc.Text()); err != nil {
			return n, fmt.Errorf("line %d: %w", n+1, err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("%w after line %d: %w", ErrRead, n, err)
	}
	return n, nil
}

// Reader reads terminator-trimmed lines, one per call.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader constructs a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: NewScanner(r, 0)}
}

// ReadLine returns the next line without its terminator, or io.EOF once the
// stream is exhausted.
func (lr *Reader) ReadLine() (string, error) {
	if lr.scanner.Scan() {
		return lr.scanner.Text(), nil
	}
	if err := lr.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
