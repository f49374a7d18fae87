// SPDX-License-Identifier: Apache-2.0

package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qautil/tcmapper/internal/mapping"
	"github.com/qautil/tcmapper/internal/script"
)

const objPath = "Object Repository/login_element"

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name string
		res  mapping.Result
		text string
		want string
	}{
		{
			name: "click",
			res:  mapping.Result{Action: "Click", Type: mapping.TypeClick},
			want: "WebUI.click(findTestObject('Object Repository/login_element'))",
		},
		{
			name: "set text",
			res:  mapping.Result{Action: "Set Text", Type: mapping.TypeInput},
			text: "아이디 입력",
			want: "WebUI.setText(findTestObject('Object Repository/login_element'), 'testvalue')",
		},
		{
			name: "set text email",
			res:  mapping.Result{Action: "Set Text", Type: mapping.TypeInput},
			text: "이메일 입력",
			want: "WebUI.setText(findTestObject('Object Repository/login_element'), 'test@example.com')",
		},
		{
			name: "encrypted",
			res:  mapping.Result{Action: "Set Encrypted Text"},
			want: "WebUI.setEncryptedText(findTestObject('Object Repository/login_element'), 'encrypted_password')",
		},
		{
			name: "verify present",
			res:  mapping.Result{Action: "Verify Element Present"},
			want: "WebUI.verifyElementPresent(findTestObject('Object Repository/login_element'), 10)",
		},
		{
			name: "verify visible",
			res:  mapping.Result{Action: "Verify Element Visible"},
			want: "WebUI.verifyElementVisible(findTestObject('Object Repository/login_element'))",
		},
		{
			name: "navigate",
			res:  mapping.Result{Action: "Navigate To Url"},
			want: "WebUI.navigateToUrl('https://example.com')",
		},
		{
			name: "stored template has its object path replaced",
			res: mapping.Result{
				Action:     "Click",
				GroovyCode: "WebUI.click(findTestObject('Object Repository/old/button'))",
			},
			want: "WebUI.click(findTestObject('Object Repository/login_element'))",
		},
		{
			name: "only the first object reference is replaced",
			res: mapping.Result{
				Action:     "Drag And Drop",
				GroovyCode: "WebUI.dragAndDropToObject(findTestObject('Object Repository/a'), findTestObject('Object Repository/b'))",
			},
			want: "WebUI.dragAndDropToObject(findTestObject('Object Repository/login_element'), findTestObject('Object Repository/b'))",
		},
		{
			name: "comment template is ignored",
			res:  mapping.Result{Action: "Click", GroovyCode: `WebUI.comment("click")`},
			want: "WebUI.click(findTestObject('Object Repository/login_element'))",
		},
		{
			name: "comment action re-derived as upload",
			res:  mapping.Result{Action: `WebUI.comment`},
			text: "파일 업로드",
			want: `WebUI.comment("Upload File: 파일 업로드")`,
		},
		{
			name: "comment action re-derived as visible",
			res:  mapping.Result{Action: `WebUI.comment`},
			text: "배너 노출",
			want: "WebUI.verifyElementVisible(findTestObject('Object Repository/login_element'))",
		},
		{
			name: "comment action defaults to present",
			res:  mapping.Result{Action: `WebUI.comment`},
			text: "상태 점검",
			want: "WebUI.verifyElementPresent(findTestObject('Object Repository/login_element'), 10)",
		},
		{
			name: "unknown action falls back on type",
			res:  mapping.Result{Action: "Tap Login", Type: mapping.TypeClick},
			want: "WebUI.click(findTestObject('Object Repository/login_element'))",
		},
		{
			name: "named action keeps its comment line",
			res:  mapping.Result{Action: "Get Text", Type: mapping.TypeVerification},
			text: `"제목" 텍스트`,
			want: `WebUI.comment("Get Text: \"제목\" 텍스트")`,
		},
		{
			name: "comment text escapes backslashes and interpolation",
			res:  mapping.Result{Action: "Verify Price", Type: mapping.TypeUnknown},
			text: `가격 $100 표시 C:\temp\ "${user}"` + "\n끝",
			want: `WebUI.comment("Verify Price: 가격 \$100 표시 C:\\temp\\ \"\${user}\"\n끝")`,
		},
		{
			name: "unknown action and type",
			res:  mapping.Result{Action: "Scroll", Type: mapping.TypeUnknown},
			text: "아래로 스크롤",
			want: `WebUI.comment("Scroll: 아래로 스크롤")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, script.Synthesize(tt.res, objPath, tt.text))
		})
	}
}

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "Object Repository/로그인_버튼_클릭_element", script.ObjectPath("1. 로그인 버튼 클릭", "Steps", 1))
	assert.Equal(t, "Object Repository/회원_가입_화면_element", script.ObjectPath("회원 가입 화면 이동 확인", "Steps", 2))
	assert.Equal(t, "Object Repository/steps_3_element", script.ObjectPath("3. !", "Steps", 3))
	assert.Equal(t, "Object Repository/expected_result_1_element", script.ObjectPath("a", "Expected Result", 1))
}
