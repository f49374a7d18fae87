// SPDX-License-Identifier: Apache-2.0

// Package textclean turns rich-text spreadsheet cells into plain,
// newline-delimited text and provides the small step-numbering helpers
// used when merging and splitting test-case rows.
package textclean

import (
	"html"
	"regexp"
	"strings"
)

var (
	lineBreakTag = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockTag     = regexp.MustCompile(`(?i)</?(?:p|div|h[1-6]|li|tr)(?:\s[^>]*)?/?>`)
	listTag      = regexp.MustCompile(`(?i)</?(?:ul|ol|table|tbody|thead)(?:\s[^>]*)?>`)
	inlineTag    = regexp.MustCompile(`(?i)</?(?:b|strong|i|em|u|s)(?:\s[^>]*)?>`)
	anchorTag    = regexp.MustCompile(`(?is)<a\s[^>]*href=["']([^"']*)["'][^>]*>(.*?)</a>`)
	imageAltTag  = regexp.MustCompile(`(?i)<img\s[^>]*alt=["']([^"']+)["'][^>]*>`)
	imageTag     = regexp.MustCompile(`(?i)<img(?:\s[^>]*)?/?>`)
	scriptBlock  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlock   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)

	tripleNewline  = regexp.MustCompile(`\n\s*\n\s*\n`)
	horizontalRun  = regexp.MustCompile(`[ \t]+`)
	newlineIndent  = regexp.MustCompile(`\n\s+`)
	trailingSpaces = regexp.MustCompile(`\s+\n`)
)

// Clean converts an HTML fragment into plain text. Block and line-break tags
// become newlines, emphasis is dropped, links render as "text (url)" and
// images as "[이미지: alt]" or "[이미지]". Entities are decoded and blank
// lines collapsed. Plain text passes through with only whitespace tidied.
func Clean(s string) string {
	if s == "" {
		return s
	}

	out := lineBreakTag.ReplaceAllString(s, "\n")
	out = blockTag.ReplaceAllString(out, "\n")
	out = listTag.ReplaceAllString(out, "\n")
	out = inlineTag.ReplaceAllString(out, "")

	out = anchorTag.ReplaceAllStringFunc(out, func(m string) string {
		sub := anchorTag.FindStringSubmatch(m)
		url := strings.TrimSpace(sub[1])
		text := strings.TrimSpace(anyTag.ReplaceAllString(sub[2], ""))
		if text != "" && !strings.EqualFold(text, url) {
			return text + " (" + url + ")"
		}
		if url != "" {
			return url
		}
		return text
	})

	out = imageAltTag.ReplaceAllString(out, "[이미지: $1]")
	out = imageTag.ReplaceAllString(out, "[이미지]")

	out = scriptBlock.ReplaceAllString(out, "")
	out = styleBlock.ReplaceAllString(out, "")
	out = anyTag.ReplaceAllString(out, "")

	out = html.UnescapeString(out)
	out = strings.ReplaceAll(out, " ", " ")

	out = tripleNewline.ReplaceAllString(out, "\n\n")
	out = horizontalRun.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	out = newlineIndent.ReplaceAllString(out, "\n")
	out = trailingSpaces.ReplaceAllString(out, "\n")
	return out
}

// Lines cleans s and returns its non-empty lines.
func Lines(s string) []string {
	cleaned := Clean(s)
	if cleaned == "" {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(cleaned, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// PreserveLineBreaks renders newlines as <br> for HTML previews.
func PreserveLineBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}
