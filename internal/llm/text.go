package llm

import "unicode/utf8"

// TrimRunes 는 문자열을 최대 maxRunes 개의 룬으로 자른다.
func TrimRunes(value string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= maxRunes {
		return value
	}
	return string([]rune(value)[:maxRunes])
}
