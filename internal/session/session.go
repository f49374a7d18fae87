// SPDX-License-Identifier: Apache-2.0

// Package session keeps the state of one extract-then-generate workflow:
// the parsed test case and the script generated from it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/script"
	"github.com/qautil/tcmapper/internal/testcase"
)

// ErrNotParsed is returned by Generate before a test case was extracted.
var ErrNotParsed = errors.New("no parsed test case; extract one first")

// Notifier reports workflow outcomes to the user.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string, err error)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(context.Context, string) {}

func (NopNotifier) Error(context.Context, string, error) {}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Success(ctx context.Context, msg string) {
	n.logger().InfoContext(ctx, msg)
}

func (n LogNotifier) Error(ctx context.Context, msg string, err error) {
	n.logger().ErrorContext(ctx, msg, "error", err)
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return logging.Discard()
	}
	return n.Logger
}

// Session holds the parsed test case and the generated script. Extract
// replaces the case and clears any script; Generate replaces the script.
type Session struct {
	pipeline  *testcase.Pipeline
	generator *script.Generator
	notifier  Notifier

	mu     sync.Mutex
	parsed *testcase.TestCase
	script *script.Script
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets the notifier. The default discards notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

func New(pipeline *testcase.Pipeline, generator *script.Generator, opts ...Option) *Session {
	s := &Session{pipeline: pipeline, generator: generator, notifier: NopNotifier{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	return s
}

// Extract parses src and keeps its first test case. A failed extraction
// leaves the session empty.
func (s *Session) Extract(ctx context.Context, src testcase.Source) (testcase.TestCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.parsed, s.script = nil, nil

	cases, err := s.pipeline.Run(ctx, src)
	if err != nil {
		s.notifier.Error(ctx, "test case extraction failed", err)
		return testcase.TestCase{}, err
	}
	if len(cases) == 0 {
		err := fmt.Errorf("%w: source %q has no test case content", testcase.ErrUnsupportedFormat, src.ID)
		s.notifier.Error(ctx, "test case extraction failed", err)
		return testcase.TestCase{}, err
	}

	tc := cases[0]
	s.parsed = &tc
	s.notifier.Success(ctx, "test case extracted")
	return tc, nil
}

// Generate builds a script from the extracted test case.
func (s *Session) Generate(ctx context.Context) (script.Script, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.parsed == nil {
		s.notifier.Error(ctx, "script generation failed", ErrNotParsed)
		return script.Script{}, ErrNotParsed
	}
	out, err := s.generator.Generate(ctx, *s.parsed)
	if err != nil {
		s.notifier.Error(ctx, "script generation failed", err)
		return script.Script{}, err
	}
	s.script = &out
	s.notifier.Success(ctx, "script generated")
	return out, nil
}

// TestCase returns the extracted test case, if any.
func (s *Session) TestCase() (testcase.TestCase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.parsed == nil {
		return testcase.TestCase{}, false
	}
	return *s.parsed, true
}

// Script returns the generated script, if any.
func (s *Session) Script() (script.Script, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.script == nil {
		return script.Script{}, false
	}
	return *s.script, true
}

// ResetParsing clears the test case and the script built from it.
func (s *Session) ResetParsing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsed, s.script = nil, nil
}

// ResetScript clears the generated script only.
func (s *Session) ResetScript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = nil
}
