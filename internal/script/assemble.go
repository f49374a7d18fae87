// SPDX-License-Identifier: Apache-2.0

package script

import (
	"strings"
	"time"
)

// TimestampLayout formats the generation time in the script header.
const TimestampLayout = "2006-01-02 15:04:05"

const scriptFooter = `    } catch (Exception e) {
        WebUI.comment("Test failed: " + e.getMessage())
        throw e
    } finally {
        WebUI.closeBrowser()
    }
}`

// Assemble wraps rendered sections in the test method template.
func Assemble(sections []string, generatedAt time.Time) string {
	var sb strings.Builder
	sb.WriteString("// ========================================\n")
	sb.WriteString("// Katalon Test Script\n")
	sb.WriteString("// Generated at: " + generatedAt.Format(TimestampLayout) + "\n")
	sb.WriteString("// ========================================\n")
	sb.WriteString("@Test\n")
	sb.WriteString("def testCase() {\n")
	sb.WriteString("    try {\n")
	sb.WriteString(indent + "\n")
	for _, s := range sections {
		sb.WriteString(s)
	}
	sb.WriteString(scriptFooter)
	return sb.String()
}
