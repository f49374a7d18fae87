// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"slices"
	"strings"
	"unicode/utf8"
)

var actionKeywords = []string{"클릭", "click", "입력", "input", "업로드", "upload", "다운로드", "download", "확인", "verify"}

// PriorityScore ranks a keyword found in text: +10 for an action verb, up
// to +10 for appearing early (one point lost per ten characters) and up to
// +5 for length.
func PriorityScore(keyword, text string) int {
	kw := strings.ToLower(keyword)
	score := 0

	if slices.Contains(actionKeywords, kw) {
		score += 10
	}

	lower := strings.ToLower(text)
	if idx := strings.Index(lower, kw); idx >= 0 {
		pos := utf8.RuneCountInString(lower[:idx])
		score += max(0, 10-pos/10)
	}

	score += min(5, utf8.RuneCountInString(kw))
	return score
}
