// SPDX-License-Identifier: Apache-2.0

// Package parsers holds the test-case input parsers.
package parsers

import "github.com/qautil/tcmapper/internal/testcase"

// NewDefaultPipeline registers every parser, most specific first.
func NewDefaultPipeline() *testcase.Pipeline {
	return testcase.NewPipeline(
		NewKatalonParser(),
		NewSheetParser(),
		NewYAMLParser(),
		NewMarkdownParser(),
		NewTextParser(),
	)
}
