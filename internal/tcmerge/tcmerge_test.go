// SPDX-License-Identifier: Apache-2.0

package tcmerge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/tcmerge"
)

func stepSheet() sheet.Table {
	return sheet.Table{
		Headers: []string{
			"Folder", "Main Category", "TC Summary", "Test Level",
			"Expected Result (Expected Result)", "Steps (Step)",
			"Step 1 (Step 1)", "Step 2 (Step 2)", "Step 3 (Step 3)",
		},
		Rows: [][]string{
			{"/login", "계정", "<b>로그인</b> 성공", "P1", "홈 화면 노출", "앱 실행", "아이디 입력", "", "로그인 버튼 클릭"},
			{"/login", "계정", "빈 행", "P2", "1. 이미 번호", "", "", "", ""},
		},
	}
}

func TestMerge(t *testing.T) {
	merged := tcmerge.Merge(stepSheet())

	assert.Equal(t, tcmerge.MergedHeaders, merged.Headers)
	require.Len(t, merged.Rows, 2)

	row := merged.Rows[0]
	assert.Equal(t, "/login", row[0])
	assert.Equal(t, "로그인 성공", row[4], "cells are cleaned")
	assert.Equal(t, "P1", row[6])
	assert.Equal(t, "1. 홈 화면 노출", row[7])
	assert.Equal(t, "1. 앱 실행\n2. 아이디 입력\n3. 로그인 버튼 클릭", row[8])

	assert.Equal(t, "1. 이미 번호", merged.Rows[1][7])
	assert.Equal(t, "", merged.Rows[1][8])
}

func TestSplit_FromMerged(t *testing.T) {
	split := tcmerge.Split(tcmerge.Merge(stepSheet()))

	assert.Equal(t, tcmerge.SplitHeaders, split.Headers)
	require.Len(t, split.Rows, 2)
	assert.Equal(t, []string{
		"/login", "계정", "", "", "로그인 성공", "", "P1", "1. 홈 화면 노출",
		"앱 실행", "아이디 입력", "로그인 버튼 클릭", "", "", "", "",
	}, split.Rows[0])
}

func TestSplit_FlexibleHeaders(t *testing.T) {
	in := sheet.Table{
		Headers: []string{"summary", "steps", "expected_result"},
		Rows:    [][]string{{"검색", "1. 검색어 입력<br>2. 검색 버튼 클릭", "결과 표시"}},
	}
	split := tcmerge.Split(in)

	row := split.Rows[0]
	assert.Equal(t, "검색", row[4])
	assert.Equal(t, "결과 표시", row[7])
	assert.Equal(t, "검색어 입력", row[8])
	assert.Equal(t, "검색 버튼 클릭", row[9])
}

func TestSplit_BuildsCombinedFromStepColumns(t *testing.T) {
	split := tcmerge.Split(stepSheet())
	assert.Equal(t, "앱 실행", split.Rows[0][8])
	assert.Equal(t, "아이디 입력", split.Rows[0][9])
	assert.Equal(t, "로그인 버튼 클릭", split.Rows[0][10])
}

func TestCombineSteps(t *testing.T) {
	tbl := stepSheet()
	assert.Equal(t, "1. 앱 실행\n2. 아이디 입력\n3. 로그인 버튼 클릭", tcmerge.CombineSteps(tbl, tbl.Rows[0]))
}
