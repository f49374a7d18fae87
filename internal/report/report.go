// SPDX-License-Identifier: Apache-2.0

// Package report summarizes Katalon HTML execution reports.
package report

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Missing is shown for a text field the report does not carry.
const Missing = "-"

const (
	headerPath  = "/html/body/div[2]/div[2]/div[1]/div[1]"
	summaryBase = "/html/body/div[2]/div[2]/div[3]/div/div[2]/div"
)

// Field locations in the Katalon report layout.
const (
	pathName       = headerPath
	pathStart      = summaryBase + "/div[1]/div/div/div[1]/div[2]"
	pathEnd        = summaryBase + "/div[1]/div/div/div[2]/div[2]"
	pathDuration   = summaryBase + "/div[1]/div/div/div[3]/div[2]"
	pathTotal      = summaryBase + "/div[2]/div/div/div[1]/div[1]"
	pathPassed     = summaryBase + "/div[2]/div/div/div[3]/div[1]"
	pathFailed     = summaryBase + "/div[2]/div/div/div[4]/div[1]"
	pathErrored    = summaryBase + "/div[2]/div/div/div[5]/div[1]"
	pathIncomplete = summaryBase + "/div[2]/div/div/div[6]/div[1]"
	pathSkipped    = summaryBase + "/div[2]/div/div/div[7]/div[1]"
)

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// Summary is the headline of one execution report.
type Summary struct {
	Name       string `json:"name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   string `json:"duration"`
	Total      int    `json:"total"`
	Passed     int    `json:"passed"`
	Failed     int    `json:"failed"`
	Errored    int    `json:"errored"`
	Incomplete int    `json:"incomplete"`
	Skipped    int    `json:"skipped"`
}

// Slice is one labelled share of the result distribution.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Parse reads a report document. Fields the layout does not contain read
// as Missing or zero.
func Parse(r io.Reader) (Summary, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to parse report: %w", err)
	}

	var s Summary
	var firstErr error
	text := func(expr string) string {
		v, err := textAt(doc, expr)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}
	count := func(expr string) int {
		return atoi(text(expr))
	}

	s.Name = text(pathName)
	s.StartTime = text(pathStart)
	s.EndTime = text(pathEnd)
	s.Duration = text(pathDuration)
	s.Total = count(pathTotal)
	s.Passed = count(pathPassed)
	s.Failed = count(pathFailed)
	s.Errored = count(pathErrored)
	s.Incomplete = count(pathIncomplete)
	s.Skipped = count(pathSkipped)

	if firstErr != nil {
		return Summary{}, firstErr
	}
	return s, nil
}

func textAt(doc *html.Node, expr string) (string, error) {
	node, err := htmlquery.Query(doc, expr)
	if err != nil {
		return "", fmt.Errorf("invalid report path %q: %w", expr, err)
	}
	if node == nil {
		return Missing, nil
	}
	if v := strings.TrimSpace(htmlquery.InnerText(node)); v != "" {
		return v, nil
	}
	return Missing, nil
}

// atoi reads the leading integer of s, or 0.
func atoi(s string) int {
	n, err := strconv.Atoi(leadingInt.FindString(strings.TrimSpace(s)))
	if err != nil {
		return 0
	}
	return n
}

// Percent formats n as a share of Total with one decimal.
func (s Summary) Percent(n int) string {
	if s.Total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(s.Total)*100)
}

// Distribution returns the result counts in chart order.
func (s Summary) Distribution() []Slice {
	return []Slice{
		{Label: "Pass", Value: s.Passed},
		{Label: "Fail", Value: s.Failed},
		{Label: "Error", Value: s.Errored},
		{Label: "Incomplete", Value: s.Incomplete},
		{Label: "Skipped", Value: s.Skipped},
	}
}

// Rows renders the summary as label/value pairs for display.
func (s Summary) Rows() [][2]string {
	rows := [][2]string{
		{"Name", s.Name},
		{"Start Time", s.StartTime},
		{"End Time", s.EndTime},
		{"Duration", s.Duration},
		{"Total", fmt.Sprintf("%d (100%%)", s.Total)},
	}
	for _, d := range s.Distribution() {
		rows = append(rows, [2]string{strings.ToUpper(d.Label), fmt.Sprintf("%d (%s)", d.Value, s.Percent(d.Value))})
	}
	return rows
}
