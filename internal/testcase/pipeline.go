// SPDX-License-Identifier: Apache-2.0

package testcase

import (
	"context"
	"fmt"
)

type Pipeline struct {
	parsers []Parser
}

// NewPipeline creates a Pipeline that tries parsers in the given order.
func NewPipeline(parsers ...Parser) *Pipeline {
	return &Pipeline{parsers: parsers}
}

// RunResult is the output of a successful pipeline run.
type RunResult struct {
	Cases      []TestCase
	ParserUsed string
}

func (p *Pipeline) Run(ctx context.Context, source Source) ([]TestCase, error) {
	result, err := p.RunWithMeta(ctx, source)
	if err != nil {
		return nil, err
	}
	return result.Cases, nil
}

func (p *Pipeline) RunWithMeta(ctx context.Context, source Source) (RunResult, error) {
	parser, err := p.selectParser(source)
	if err != nil {
		return RunResult{}, err
	}

	cases, err := parser.Parse(ctx, source)
	if err != nil {
		return RunResult{}, fmt.Errorf("parser %q failed: %w", parser.Name(), err)
	}

	kept := make([]TestCase, 0, len(cases))
	for _, tc := range cases {
		if !tc.IsEmpty() {
			kept = append(kept, tc)
		}
	}
	return RunResult{Cases: kept, ParserUsed: parser.Name()}, nil
}

// selectParser returns the first registered parser that can handle the given source.
func (p *Pipeline) selectParser(source Source) (Parser, error) {
	if len(source.Content) == 0 {
		return nil, fmt.Errorf("%w: source %q is empty", ErrUnsupportedFormat, source.ID)
	}
	for _, parser := range p.parsers {
		if parser.CanHandle(source) {
			return parser, nil
		}
	}
	return nil, fmt.Errorf("%w: no parser found for source %q (format hint: %q)", ErrUnsupportedFormat, source.ID, source.Format)
}

// RegisteredParsers returns the names of all currently registered parsers.
func (p *Pipeline) RegisteredParsers() []string {
	names := make([]string, len(p.parsers))
	for i, parser := range p.parsers {
		names[i] = parser.Name()
	}
	return names
}
