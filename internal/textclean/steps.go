// SPDX-License-Identifier: Apache-2.0

package textclean

import (
	"fmt"
	"regexp"
	"strings"
)

// StepSlots is the number of step cells in a split row: the lead
// "Steps (Step)" cell plus Step 1 through Step 6.
const StepSlots = 7

var numberedLine = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)

// SplitCombinedSteps spreads a numbered step list over StepSlots cells.
// Numbering markers are stripped, empty lines skipped and extra lines dropped.
func SplitCombinedSteps(combined string) []string {
	steps := make([]string, StepSlots)
	text := strings.TrimSpace(combined)
	if text == "" {
		return steps
	}

	slot := 0
	for _, line := range strings.Split(text, "\n") {
		if slot >= StepSlots {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := numberedLine.FindStringSubmatch(line); m != nil {
			line = strings.TrimSpace(m[2])
		}
		steps[slot] = line
		slot++
	}
	return steps
}

// AddNumbering prefixes "1. " unless the text is already numbered from one.
func AddNumbering(s string) string {
	text := strings.TrimSpace(s)
	if text == "" {
		return s
	}
	if strings.HasPrefix(text, "1. ") {
		return text
	}
	return "1. " + text
}

// AddLineNumbering numbers each non-empty line starting at one.
func AddLineNumbering(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, fmt.Sprintf("%d. %s", len(out)+1, line))
		}
	}
	return strings.Join(out, "\n")
}

// StripNumbering removes a leading "N." marker from a single line.
func StripNumbering(line string) string {
	line = strings.TrimSpace(line)
	if m := numberedLine.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2])
	}
	return line
}
