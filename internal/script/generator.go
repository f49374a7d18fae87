// SPDX-License-Identifier: Apache-2.0

// Package script turns a parsed test case into a Katalon Groovy test
// method, one resolved action per documented fragment.
package script

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/testcase"
)

// Section names, in script order.
const (
	SectionPrecondition   = "Precondition"
	SectionSummary        = "Summary"
	SectionSteps          = "Steps"
	SectionExpectedResult = "Expected Result"
)

// Script is a generated test method and the trace of how each fragment
// was mapped.
type Script struct {
	Text        string    `json:"text"`
	Lines       []Line    `json:"lines"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithNow sets the clock stamped into the script header.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator builds scripts from test cases.
type Generator struct {
	resolver Resolver
	logger   *slog.Logger
	now      func() time.Time
}

func NewGenerator(resolver Resolver, opts ...Option) *Generator {
	g := &Generator{resolver: resolver, logger: logging.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	return g
}

// Generate renders the Precondition, Summary, Steps and Expected Result
// sections of tc in that order. Duplicate actions are skipped across the
// whole script.
func (g *Generator) Generate(ctx context.Context, tc testcase.TestCase) (Script, error) {
	if err := ctx.Err(); err != nil {
		return Script{}, err
	}

	builder := NewBuilder(g.resolver, g.logger)
	sections := []struct {
		name      string
		fragments []string
	}{
		{SectionPrecondition, tc.Precondition},
		{SectionSummary, single(tc.Summary)},
		{SectionSteps, tc.Steps},
		{SectionExpectedResult, single(tc.ExpectedResult)},
	}

	var (
		rendered = make([]string, 0, len(sections))
		lines    []Line
	)
	for _, s := range sections {
		text, sectionLines := builder.BuildSection(ctx, s.name, s.fragments)
		rendered = append(rendered, text)
		lines = append(lines, sectionLines...)
	}

	generatedAt := g.now()
	g.logger.InfoContext(ctx, "script generated", "fragments", len(lines), "summary", tc.Summary)
	return Script{
		Text:        Assemble(rendered, generatedAt),
		Lines:       lines,
		GeneratedAt: generatedAt,
	}, nil
}

func single(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return []string{s}
}
