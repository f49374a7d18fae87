// SPDX-License-Identifier: Apache-2.0

package katalon_test

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qautil/tcmapper/internal/katalon"
	"github.com/qautil/tcmapper/internal/sheet"
	"github.com/qautil/tcmapper/internal/testcase"
)

var loginCase = testcase.TestCase{
	Index:        1,
	TestLevel:    "P1",
	MainCategory: "계정",
	Summary:      `로그인: "성공"?`,
	Steps:        []string{"1. 로그인 버튼 클릭", "2. 아이디 입력"},
}

func TestMetadataTable(t *testing.T) {
	tbl := katalon.MetadataTable([]testcase.TestCase{loginCase, {Summary: "로그아웃"}})

	assert.Equal(t, []string{
		"Index", "Test Level", "Main Category", "Sub Category", "Detail Category",
		"Summary", "Precondition", "Steps", "Expected Result",
	}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"1", "P1", "계정", "", "", `로그인: "성공"?`, "", "1. 로그인 버튼 클릭\n2. 아이디 입력", ""}, tbl.Rows[0])
	assert.Equal(t, "2", tbl.Rows[1][0])

	assert.Empty(t, katalon.TemplateTable().Rows)
}

func TestMetadataTable_WritesWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sheet.WriteXLSX(&buf, katalon.MetadataSheet, katalon.MetadataTable([]testcase.TestCase{loginCase})))

	back, err := sheet.ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, katalon.MetadataHeaders, back.Headers)
	assert.Equal(t, "1. 로그인 버튼 클릭\n2. 아이디 입력", back.Rows[0][7])
}

func TestMetadataComment(t *testing.T) {
	want := "=================== [Testcase] ===================\n\n" +
		"Test Level   : P1\n" +
		"Main Category   : 계정\n" +
		"Sub Category   :\n" +
		"Detail Category   :\n" +
		"Summary   : 로그인: \"성공\"?\n" +
		"Precondition   :\n" +
		"Steps   : 1. 로그인 버튼 클릭\n" +
		"          2. 아이디 입력\n" +
		"Expected Result   :\n\n" +
		"==================================================="
	assert.Equal(t, want, katalon.MetadataComment(loginCase))
}

func TestNewScaffold(t *testing.T) {
	s := katalon.NewScaffold(loginCase, 7, "guid-1")

	assert.Equal(t, "007_로그인 성공", s.Name)
	assert.True(t, strings.HasPrefix(s.Groovy, "import static com.kms.katalon.core.checkpoint.CheckpointFactory.findCheckpoint\n"))
	assert.Contains(t, s.Groovy, "import org.openqa.selenium.Keys as Keys\n\nWebUI.comment(\"\"\"\n=================== [Testcase]")
	assert.True(t, strings.HasSuffix(s.Groovy, "===================================================\n\"\"\")"))
	assert.Equal(t, 18, strings.Count(s.Groovy, "import "))

	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<TestCaseEntity>
   <description></description>
   <name>007_로그인 성공</name>
   <tag></tag>
   <comment></comment>
   <recordOption>OTHER</recordOption>
   <testCaseGuid>guid-1</testCaseGuid>
</TestCaseEntity>`, s.TC)
}

func TestNewScaffold_DescriptorEscapesName(t *testing.T) {
	s := katalon.NewScaffold(testcase.TestCase{Summary: "로그인 & <관리자> 로그아웃"}, 1, "guid-1")

	assert.Contains(t, s.TC, "<name>001_로그인 &amp; 관리자 로그아웃</name>")

	var entity struct {
		Name string `xml:"name"`
		GUID string `xml:"testCaseGuid"`
	}
	require.NoError(t, xml.Unmarshal([]byte(s.TC), &entity))
	assert.Equal(t, s.Name, entity.Name)
	assert.Equal(t, "guid-1", entity.GUID)
}

func TestScaffolds_DefaultNamesAndGUIDs(t *testing.T) {
	out := katalon.Scaffolds([]testcase.TestCase{{Steps: []string{"클릭"}}, loginCase})
	require.Len(t, out, 2)
	assert.Equal(t, "001_TestCase_1", out[0].Name)
	assert.Equal(t, "002_로그인 성공", out[1].Name)

	_, err := uuid.Parse(out[0].GUID)
	require.NoError(t, err)
	assert.NotEqual(t, out[0].GUID, out[1].GUID)
}

func TestWriteBundle(t *testing.T) {
	scaffolds := []katalon.Scaffold{
		katalon.NewScaffold(loginCase, 1, "g1"),
		katalon.NewScaffold(testcase.TestCase{Summary: "로그아웃"}, 2, "g2"),
	}

	tests := []struct {
		kind      string
		wantFiles []string
	}{
		{kind: katalon.BundleGroovy, wantFiles: []string{"001_로그인 성공/001_로그인 성공.groovy", "002_로그아웃/002_로그아웃.groovy"}},
		{kind: katalon.BundleTC, wantFiles: []string{"001_로그인 성공.tc", "002_로그아웃.tc"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, katalon.WriteBundle(&buf, scaffolds, tt.kind))

			zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
			require.NoError(t, err)
			var names []string
			for _, f := range zr.File {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.wantFiles, names)

			rc, err := zr.File[1].Open()
			require.NoError(t, err)
			defer rc.Close()
			body, err := io.ReadAll(rc)
			require.NoError(t, err)
			if tt.kind == katalon.BundleTC {
				assert.Equal(t, scaffolds[1].TC, string(body))
			} else {
				assert.Equal(t, scaffolds[1].Groovy, string(body))
			}
		})
	}

	require.Error(t, katalon.WriteBundle(io.Discard, scaffolds, "pdf"))
}
