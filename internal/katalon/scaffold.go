// SPDX-License-Identifier: Apache-2.0

package katalon

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/qautil/tcmapper/internal/testcase"
)

// Bundle kinds accepted by WriteBundle.
const (
	BundleGroovy = "groovy"
	BundleTC     = "tc"
)

const groovyImports = `import static com.kms.katalon.core.checkpoint.CheckpointFactory.findCheckpoint
import static com.kms.katalon.core.testcase.TestCaseFactory.findTestCase
import static com.kms.katalon.core.testdata.TestDataFactory.findTestData
import static com.kms.katalon.core.testobject.ObjectRepository.findTestObject
import static com.kms.katalon.core.testobject.ObjectRepository.findWindowsObject
import com.kms.katalon.core.checkpoint.Checkpoint as Checkpoint
import com.kms.katalon.core.cucumber.keyword.CucumberBuiltinKeywords as CucumberKW
import com.kms.katalon.core.mobile.keyword.MobileBuiltInKeywords as Mobile
import com.kms.katalon.core.model.FailureHandling as FailureHandling
import com.kms.katalon.core.testcase.TestCase as TestCase
import com.kms.katalon.core.testdata.TestData as TestData
import com.kms.katalon.core.testng.keyword.TestNGBuiltinKeywords as TestNGKW
import com.kms.katalon.core.testobject.TestObject as TestObject
import com.kms.katalon.core.webservice.keyword.WSBuiltInKeywords as WS
import com.kms.katalon.core.webui.keyword.WebUiBuiltInKeywords as WebUI
import com.kms.katalon.core.windows.keyword.WindowsBuiltinKeywords as Windows
import internal.GlobalVariable as GlobalVariable
import org.openqa.selenium.Keys as Keys
`

const descriptorTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<TestCaseEntity>
   <description></description>
   <name>%s</name>
   <tag></tag>
   <comment></comment>
   <recordOption>OTHER</recordOption>
   <testCaseGuid>%s</testCaseGuid>
</TestCaseEntity>`

var (
	unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	valueLineBreak  = regexp.MustCompile(`\n|\\n`)
)

// Scaffold is a generated Katalon test case.
type Scaffold struct {
	Name   string `json:"name"`
	GUID   string `json:"guid"`
	Groovy string `json:"groovy"`
	TC     string `json:"tc"`
}

// NewScaffold builds the scaffold for the index-th (1-based) test case.
// An empty guid is replaced by a random one.
func NewScaffold(tc testcase.TestCase, index int, guid string) Scaffold {
	if guid == "" {
		guid = uuid.NewString()
	}
	name := fmt.Sprintf("%03d_%s", index, SanitizeFileName(scaffoldTitle(tc, index)))
	return Scaffold{
		Name:   name,
		GUID:   guid,
		Groovy: groovyImports + "\n" + `WebUI.comment("""` + "\n" + MetadataComment(tc) + "\n" + `""")`,
		TC:     fmt.Sprintf(descriptorTemplate, xmlText(name), xmlText(guid)),
	}
}

func xmlText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Scaffolds builds one scaffold per test case with fresh GUIDs.
func Scaffolds(cases []testcase.TestCase) []Scaffold {
	out := make([]Scaffold, 0, len(cases))
	for i, tc := range cases {
		out = append(out, NewScaffold(tc, i+1, ""))
	}
	return out
}

func scaffoldTitle(tc testcase.TestCase, index int) string {
	if strings.TrimSpace(tc.Summary) != "" {
		return tc.Summary
	}
	return fmt.Sprintf("TestCase_%d", index)
}

// SanitizeFileName drops characters that are not allowed in file names.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(unsafeFileChars.ReplaceAllString(name, ""))
}

// MetadataComment renders the "[Testcase]" block embedded in scripts.
// Continuation lines are indented under their label's value.
func MetadataComment(tc testcase.TestCase) string {
	var sb strings.Builder
	sb.WriteString("=================== [Testcase] ===================\n\n")
	for i, f := range testcase.StandardFields {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(metadataLine(f, tc.Field(f)))
	}
	sb.WriteString("\n\n===================================================")
	return sb.String()
}

func metadataLine(label, value string) string {
	if value == "" {
		return label + "   :"
	}
	pad := strings.Repeat(" ", len(label)+5)
	parts := valueLineBreak.Split(value, -1)
	for i := 1; i < len(parts); i++ {
		parts[i] = pad + parts[i]
	}
	return label + "   : " + strings.Join(parts, "\n")
}

// WriteBundle zips scaffolds. BundleGroovy stores each script in a folder
// named after its test case; BundleTC stores the descriptors flat.
func WriteBundle(w io.Writer, scaffolds []Scaffold, kind string) error {
	if kind != BundleGroovy && kind != BundleTC {
		return fmt.Errorf("unknown bundle kind %q", kind)
	}

	zw := zip.NewWriter(w)
	for _, s := range scaffolds {
		name, content := s.Name+".tc", s.TC
		if kind == BundleGroovy {
			name, content = s.Name+"/"+s.Name+".groovy", s.Groovy
		}
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := io.WriteString(f, content); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish bundle: %w", err)
	}
	return nil
}
