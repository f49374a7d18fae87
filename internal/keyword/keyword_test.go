// SPDX-License-Identifier: Apache-2.0

package keyword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qautil/tcmapper/internal/keyword"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"korean step", "로그인 버튼을 클릭한다", []string{"로그인", "버튼을", "클릭한다"}},
		{"punctuation splits", "Click the 'Login' button!", []string{"click", "the", "login", "button"}},
		{"short tokens dropped", "a b cd", []string{"cd"}},
		{"numbers dropped", "1. 12 3. step2", []string{"step2"}},
		{"duplicates removed", "Click click CLICK", []string{"click"}},
		{"empty", "   ", nil},
		{"jamo kept", "ㅋㅋ 확인", []string{"ㅋㅋ", "확인"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyword.Extract(tt.in))
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	first := keyword.Extract("파일을 업로드하고, 업로드 결과를 확인한다.")
	again := keyword.Extract(joinSpace(first))
	assert.Equal(t, first, again)
}

func TestPairsAndTriples(t *testing.T) {
	kws := []string{"a1", "b2", "c3"}
	assert.Equal(t, []string{"a1 b2", "a1 c3", "b2 c3"}, keyword.Pairs(kws))
	assert.Equal(t, []string{"a1 b2 c3"}, keyword.Triples(kws))
	assert.Nil(t, keyword.Pairs([]string{"solo"}))
	assert.Nil(t, keyword.Triples(kws[:2]))
}

func joinSpace(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
