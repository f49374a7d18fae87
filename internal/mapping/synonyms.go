// SPDX-License-Identifier: Apache-2.0

package mapping

// synonyms expands a keyword into alternatives tried, in order, when
// every direct lookup failed.
var synonyms = map[string][]string{
	"업로드":  {"upload", "올리기", "전송", "파일업로드"},
	"다운로드": {"download", "내려받기", "받기"},
	"클릭":   {"click", "누르기", "터치", "선택"},
	"입력":   {"input", "작성", "기입", "넣기"},
	"확인":   {"verify", "검증", "체크", "점검"},
	"표시":   {"display", "노출", "보임", "나타남"},
	"팝업":   {"popup", "모달", "modal", "대화상자"},
	"파일":   {"file", "문서", "데이터"},
	"용량":   {"size", "크기", "사이즈"},
}

// Synonyms returns the alternatives registered for keyword.
func Synonyms(keyword string) []string {
	return synonyms[keyword]
}
