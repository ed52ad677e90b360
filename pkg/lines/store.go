// Package lines implements the in-memory line store: an ordered, mutable
// collection of text lines addressed by zero-based position.
//
// A Store is not safe for concurrent use. Callers that share one across
// goroutines must serialize every call.
package lines

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// DefaultInitialCapacity is the number of slots allocated on first insert.
const DefaultInitialCapacity = 16

var (
	// ErrOutOfRange is returned when a position is outside the valid bounds.
	ErrOutOfRange = errors.New("position out of range")

	// ErrAllocation is returned when the store cannot grow to hold another line.
	ErrAllocation = errors.New("line store allocation failed")
)

// Options configures a Store.
type Options struct {
	InitialCapacity int // default: 16
	MaxLines        int // 0 means unlimited
}

// Store owns an ordered sequence of lines. Every slot in [0, Len()) holds a
// live value; the empty string is valid content.
type Store struct {
	lines []string
	opt   Options
}

// New returns an empty Store. No backing storage is allocated until the
// first insert.
func New(opt Options) *Store {
	if opt.InitialCapacity <= 0 {
		opt.InitialCapacity = DefaultInitialCapacity
	}
	if opt.MaxLines < 0 {
		opt.MaxLines = 0
	}
	return &Store{opt: opt}
}

// FromLines returns a Store holding copies of the given lines.
func FromLines(opt Options, src []string) (*Store, error) {
	s := New(opt)
	for _, l := range src {
		if err := s.Append(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of lines.
func (s *Store) Len() int { return len(s.lines) }

func (s *Store) capacity() int { return cap(s.lines) }

// ensureCapacity grows the backing array so it can hold need lines. Existing
// lines keep their order; any earlier slice of the backing array is stale
// afterwards.
func (s *Store) ensureCapacity(need int) error {
	if s.opt.MaxLines > 0 && need > s.opt.MaxLines {
		return fmt.Errorf("%w: %d lines exceeds limit of %d", ErrAllocation, need, s.opt.MaxLines)
	}
	if cap(s.lines) >= need {
		return nil
	}

	newCap := cap(s.lines)
	if newCap == 0 {
		newCap = s.opt.InitialCapacity
		if newCap <= 0 {
			newCap = DefaultInitialCapacity
		}
	}
	for newCap < need {
		newCap *= 2
	}
	if s.opt.MaxLines > 0 && newCap > s.opt.MaxLines {
		newCap = s.opt.MaxLines
	}

	grown := make([]string, len(s.lines), newCap)
	copy(grown, s.lines)
	s.lines = grown
	return nil
}

// Insert stores a copy of text at pos, shifting lines at pos and after one
// slot to the right. pos may equal Len() to append.
func (s *Store) Insert(pos int, text string) error {
	if pos < 0 || pos > len(s.lines) {
		return fmt.Errorf("%w: insert at %d with %d lines", ErrOutOfRange, pos, len(s.lines))
	}
	if err := s.ensureCapacity(len(s.lines) + 1); err != nil {
		return err
	}

	s.lines = s.lines[:len(s.lines)+1]
	copy(s.lines[pos+1:], s.lines[pos:])
	s.lines[pos] = strings.Clone(text)
	return nil
}

// Append is Insert(Len(), text).
func (s *Store) Append(text string) error {
	return s.Insert(len(s.lines), text)
}

// Delete removes the line at pos, shifting later lines one slot to the left.
func (s *Store) Delete(pos int) error {
	if pos < 0 || pos >= len(s.lines) {
		return fmt.Errorf("%w: delete at %d with %d lines", ErrOutOfRange, pos, len(s.lines))
	}

	last := len(s.lines) - 1
	copy(s.lines[pos:], s.lines[pos+1:])
	s.lines[last] = "" // release the vacated slot
	s.lines = s.lines[:last]
	return nil
}

// Replace swaps the line at pos for a copy of text.
func (s *Store) Replace(pos int, text string) error {
	if pos < 0 || pos >= len(s.lines) {
		return fmt.Errorf("%w: replace at %d with %d lines", ErrOutOfRange, pos, len(s.lines))
	}
	s.lines[pos] = strings.Clone(text)
	return nil
}

// Get returns the line at pos. ok is false when pos is out of range.
func (s *Store) Get(pos int) (line string, ok bool) {
	if pos < 0 || pos >= len(s.lines) {
		return "", false
	}
	return s.lines[pos], true
}

// Find returns the index of the first line containing needle. An empty
// needle never matches.
func (s *Store) Find(needle string) (int, bool) {
	if needle == "" {
		return -1, false
	}
	for i, l := range s.lines {
		if strings.Contains(l, needle) {
			return i, true
		}
	}
	return -1, false
}

// Lines returns a copy of all lines in order.
func (s *Store) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// All iterates over (index, line) pairs in order. The store must not be
// mutated during iteration.
func (s *Store) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, l := range s.lines {
			if !yield(i, l) {
				return
			}
		}
	}
}

// Clear drops every line and releases the backing storage. Calling it on an
// empty store is a no-op.
func (s *Store) Clear() {
	clear(s.lines)
	s.lines = nil
}

// WriteTo writes a 1-based numbered listing of the store to w.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	if len(s.lines) == 0 {
		n, err := io.WriteString(w, "[Buffer is empty]\n")
		return int64(n), err
	}

	var total int64
	for i, l := range s.lines {
		n, err := fmt.Fprintf(w, "%d: %s\n", i+1, l)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
