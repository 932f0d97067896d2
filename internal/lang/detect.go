// Package lang 은 유니코드 범위 기반의 일본어/영어 판별을 제공한다.
package lang

import (
	"golang.org/x/text/language"
)

// 히라가나·가타카나, CJK 확장 A, CJK 통합 한자 범위
var japaneseRanges = [...][2]rune{
	{0x3040, 0x30FF},
	{0x3400, 0x4DBF},
	{0x4E00, 0x9FFF},
}

// IsJapanese 는 문자열에 일본어 문자가 하나라도 있으면 true 를 반환한다.
// CJK 문자가 없으면 다른 언어라도 영어로 취급한다.
func IsJapanese(s string) bool {
	for _, r := range s {
		for _, rng := range japaneseRanges {
			if r >= rng[0] && r <= rng[1] {
				return true
			}
		}
	}
	return false
}

// Detect 는 입력 언어 태그를 반환한다.
func Detect(s string) language.Tag {
	if IsJapanese(s) {
		return language.Japanese
	}
	return language.English
}

// Code 는 응답 메타데이터에 쓰는 기본 언어 코드("ja"/"en")를 반환한다.
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
