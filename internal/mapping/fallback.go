// SPDX-License-Identifier: Apache-2.0

package mapping

import "strings"

// fallbackRule maps a set of trigger substrings to an action.
type fallbackRule struct {
	triggers   []string
	action     string
	actionType string
}

// fallbackRules is the local rule table. Rules are evaluated in order and
// the first match wins, so a step naming both an upload and a click is an
// upload, and a password entry is never a plain Set Text.
var fallbackRules = []fallbackRule{
	{triggers: []string{"업로드", "upload", "파일선택"}, action: "Upload File", actionType: TypeUpload},
	{triggers: []string{"다운로드", "download", "내려받기"}, action: "Download File", actionType: TypeDownload},
	{triggers: []string{"비밀번호", "password", "패스워드"}, action: "Set Encrypted Text", actionType: TypeEncryptedInput},
	{triggers: []string{"입력", "이메일", "아이디", "작성"}, action: "Set Text", actionType: TypeInput},
	{triggers: []string{"클릭", "버튼", "로그인", "선택"}, action: "Click", actionType: TypeClick},
	{triggers: []string{"팝업", "모달", "대화상자"}, action: "Verify Element Visible", actionType: TypeVisibility},
	{triggers: []string{"표시", "노출", "메시지", "나타남"}, action: "Verify Element Visible", actionType: TypeVisibility},
	{triggers: []string{"텍스트", "내용", "값", "데이터"}, action: "Get Text", actionType: TypeGetText},
	{triggers: []string{"이동", "페이지", "사이트", "접속"}, action: "Navigate To Url", actionType: TypeNavigation},
	{triggers: []string{"드래그", "끌어", "이동시"}, action: "Drag And Drop", actionType: TypeDragDrop},
}

// LocalFallback maps text through the local rule table. It always finds an
// action, defaulting to Verify Element Present.
func LocalFallback(text string) Result {
	lower := strings.ToLower(text)

	for _, rule := range fallbackRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return Result{Found: true, Action: rule.action, Type: rule.actionType, Source: SourceLocal}
			}
		}
	}

	return Result{Found: true, Action: "Verify Element Present", Type: TypeVerification, Source: SourceLocal}
}
