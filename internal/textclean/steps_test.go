// SPDX-License-Identifier: Apache-2.0

package textclean_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qautil/tcmapper/internal/textclean"
)

func TestSplitCombinedSteps(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "numbered lines",
			in:   "1. Open app\n2. Tap login",
			want: []string{"Open app", "Tap login", "", "", "", "", ""},
		},
		{
			name: "empty input",
			in:   "  ",
			want: []string{"", "", "", "", "", "", ""},
		},
		{
			name: "unnumbered lines and blanks",
			in:   "first\n\n  second  \n3.third",
			want: []string{"first", "second", "third", "", "", "", ""},
		},
		{
			name: "overflow is dropped",
			in:   "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g\n8. h",
			want: []string{"a", "b", "c", "d", "e", "f", "g"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textclean.SplitCombinedSteps(tt.in)
			assert.Len(t, got, textclean.StepSlots)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddNumbering(t *testing.T) {
	assert.Equal(t, "1. done", textclean.AddNumbering("done"))
	assert.Equal(t, "1. done", textclean.AddNumbering("  1. done "))
	assert.Equal(t, "", textclean.AddNumbering(""))
}

func TestAddLineNumbering(t *testing.T) {
	assert.Equal(t, "1. a\n2. b", textclean.AddLineNumbering("a\n\n b "))
	assert.Equal(t, " ", textclean.AddLineNumbering(" "))
}

func TestStripNumbering(t *testing.T) {
	assert.Equal(t, "로그인 버튼 클릭", textclean.StripNumbering("1. 로그인 버튼 클릭"))
	assert.Equal(t, "no marker", textclean.StripNumbering("no marker"))
}
