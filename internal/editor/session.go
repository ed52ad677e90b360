// Package editor holds the interactive session around a line store: the
// current filename, the modified flag and the numbered console menu.
package editor

import (
	"errors"
	"log/slog"
	"time"

	"linestore/internal/clock"
	"linestore/internal/core"
	"linestore/pkg/lines"
)

// ErrNoFilename is returned by Save when the session has no file yet.
var ErrNoFilename = errors.New("no filename set")

// Session owns a store plus the bookkeeping the store itself does not track.
type Session struct {
	Store    *lines.Store
	Filename string
	Modified bool
	SavedAt  time.Time

	persister core.Persister
	clock     clock.Clock
	logger    *slog.Logger
	opt       lines.Options
}

// NewSession returns a session over an empty, unnamed store.
func NewSession(p core.Persister, clk clock.Clock, logger *slog.Logger, opt lines.Options) *Session {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		Store:     lines.New(opt),
		persister: p,
		clock:     clk,
		logger:    logger,
		opt:       opt,
	}
}

// Open loads path into a fresh store and names the session after it. When
// loading fails the session starts empty under that name and the error is
// returned for reporting.
func (s *Session) Open(path string) error {
	store, err := core.OpenOrEmpty(s.persister, path, s.opt)
	s.Store = store
	s.Filename = path
	s.Modified = false
	s.SavedAt = time.Time{}
	return err
}

func (s *Session) Insert(pos int, text string) error {
	if err := s.Store.Insert(pos, text); err != nil {
		return err
	}
	s.Modified = true
	return nil
}

func (s *Session) Append(text string) error {
	if err := s.Store.Append(text); err != nil {
		return err
	}
	s.Modified = true
	return nil
}

func (s *Session) Replace(pos int, text string) error {
	if err := s.Store.Replace(pos, text); err != nil {
		return err
	}
	s.Modified = true
	return nil
}

func (s *Session) Delete(pos int) error {
	if err := s.Store.Delete(pos); err != nil {
		return err
	}
	s.Modified = true
	return nil
}

// Save writes the store to the session's file.
func (s *Session) Save() error {
	if s.Filename == "" {
		return ErrNoFilename
	}
	return s.SaveAs(s.Filename)
}

// SaveAs writes the store to path. On success path becomes the session's
// file and the modified flag is cleared.
func (s *Session) SaveAs(path string) error {
	if err := s.persister.Save(path, s.Store); err != nil {
		return err
	}
	s.Filename = path
	s.Modified = false
	s.SavedAt = s.clock.Now()
	return nil
}
