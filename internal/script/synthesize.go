// SPDX-License-Identifier: Apache-2.0

package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/qautil/tcmapper/internal/mapping"
)

// Canonical action names with a dedicated line template.
const (
	ActionClick            = "Click"
	ActionSetText          = "Set Text"
	ActionSetEncryptedText = "Set Encrypted Text"
	ActionVerifyPresent    = "Verify Element Present"
	ActionVerifyVisible    = "Verify Element Visible"
	ActionNavigate         = "Navigate To Url"
	ActionUploadFile       = "Upload File"
)

const commentCall = "WebUI.comment"

var objectReference = regexp.MustCompile(`Object Repository/[^']+`)

// actionByType picks a template for actions whose names are not canonical.
var actionByType = map[string]string{
	mapping.TypeClick:          ActionClick,
	mapping.TypeInput:          ActionSetText,
	mapping.TypeEncryptedInput: ActionSetEncryptedText,
	mapping.TypeVerification:   ActionVerifyPresent,
	mapping.TypeVisibility:     ActionVerifyVisible,
	mapping.TypeNavigation:     ActionNavigate,
}

// Synthesize renders one line of Katalon Groovy for a resolved action.
//
// A stored code template is used as is, with its first object reference
// pointed at objectPath, unless it only emits a comment. Comment actions
// are re-derived from the step text. Otherwise the action selects a fixed
// template, and anything unknown becomes a WebUI.comment line.
func Synthesize(res mapping.Result, objectPath, text string) string {
	if res.GroovyCode != "" && !strings.Contains(res.GroovyCode, commentCall) {
		return objectReference.ReplaceAllStringFunc(res.GroovyCode, replaceFirst(objectPath))
	}

	action := res.Action
	if strings.Contains(action, commentCall) {
		action = actionFromText(text)
	}

	if !hasTemplate(action) && !isNamedAction(action) {
		if byType, ok := actionByType[res.Type]; ok {
			action = byType
		}
	}

	switch action {
	case ActionClick:
		return fmt.Sprintf("WebUI.click(findTestObject('%s'))", objectPath)
	case ActionSetText:
		value := "testvalue"
		if strings.Contains(strings.ToLower(text), "이메일") {
			value = "test@example.com"
		}
		return fmt.Sprintf("WebUI.setText(findTestObject('%s'), '%s')", objectPath, value)
	case ActionSetEncryptedText:
		return fmt.Sprintf("WebUI.setEncryptedText(findTestObject('%s'), 'encrypted_password')", objectPath)
	case ActionVerifyPresent:
		return fmt.Sprintf("WebUI.verifyElementPresent(findTestObject('%s'), 10)", objectPath)
	case ActionVerifyVisible:
		return fmt.Sprintf("WebUI.verifyElementVisible(findTestObject('%s'))", objectPath)
	case ActionNavigate:
		return "WebUI.navigateToUrl('https://example.com')"
	}
	return fmt.Sprintf(`%s("%s: %s")`, commentCall, escape(action), escape(text))
}

func hasTemplate(action string) bool {
	switch action {
	case ActionClick, ActionSetText, ActionSetEncryptedText, ActionVerifyPresent, ActionVerifyVisible, ActionNavigate:
		return true
	}
	return false
}

// isNamedAction reports whether action is a known Katalon keyword that has
// no template of its own and should keep its name in the comment line.
func isNamedAction(action string) bool {
	switch action {
	case ActionUploadFile, "Download File", "Get Text", "Drag And Drop":
		return true
	}
	return false
}

func actionFromText(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "업로드"):
		return ActionUploadFile
	case strings.Contains(lower, "확인"), strings.Contains(lower, "검증"):
		return ActionVerifyPresent
	case strings.Contains(lower, "노출"), strings.Contains(lower, "표시"):
		return ActionVerifyVisible
	}
	return ActionVerifyPresent
}

func replaceFirst(replacement string) func(string) string {
	done := false
	return func(match string) string {
		if done {
			return match
		}
		done = true
		return replacement
	}
}

// groovyString escapes text for a double-quoted GString, where $ starts
// an interpolation.
var groovyString = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\r`,
)

func escape(text string) string {
	return groovyString.Replace(text)
}
