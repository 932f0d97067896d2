package llm

import (
	"strings"

	"github.com/goccy/go-json"
)

// ExtractJSON 은 텍스트에서 첫 '{' 부터 마지막 '}' 까지를 잘라 JSON 객체로 파싱한다.
// 앞뒤 설명문이나 코드 펜스는 무시하지만 내부 JSON 은 엄격하게 파싱한다.
// 실패하면 nil 을 반환한다.
func ExtractJSON(text string) map[string]any {
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first < 0 || last < 0 || last <= first {
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text[first:last+1]), &parsed); err != nil {
		return nil
	}
	return parsed
}
