package suggestion

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"golang.org/x/text/language"

	"github.com/park285/weather-assistant-go/internal/lang"
	"github.com/park285/weather-assistant-go/internal/llm"
)

// BulletCount 는 제안 카드의 고정 bullet 개수다.
const BulletCount = 3

const (
	fillerEN = "Adjust as needed."
	fillerJA = "必要に応じて調整してください。"

	// ReasonUnparsed 는 모델 응답을 JSON 으로 읽지 못해 대체 제안을 쓴 경우다.
	ReasonUnparsed = "unparsed"
)

// Filler 는 언어별 bullet 패딩 문구를 반환한다.
func Filler(tag language.Tag) string {
	if lang.Code(tag) == "ja" {
		return fillerJA
	}
	return fillerEN
}

// Normalize: 파싱된 모델 응답을 Suggestion 으로 정규화합니다.
// parsed 가 nil 이면 카테고리 대체 제안을 Fallback 으로 반환합니다.
func Normalize(parsed map[string]any, category Category, weather WeatherFacts, tag language.Tag) llm.Outcome[Suggestion] {
	if parsed == nil {
		return llm.Fallback(category.Fallback(weather), ReasonUnparsed)
	}

	title := truthyString(parsed["title"])
	if title == "" {
		title = fmt.Sprintf("%s suggestions (%s)", category, weather.Location())
	}

	return llm.Ok(Suggestion{
		Title:   title,
		Bullets: fitBullets(toBullets(parsed["bullets"]), Filler(tag)),
		Summary: truthyString(parsed["summary"]),
		Reason:  truthyString(parsed["reason"]),
	})
}

func toBullets(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	bullets := make([]string, 0, len(items))
	for _, item := range items {
		bullets = append(bullets, stringify(item))
	}
	return bullets
}

func fitBullets(bullets []string, filler string) []string {
	out := make([]string, 0, BulletCount)
	for _, bullet := range bullets {
		if len(out) == BulletCount {
			break
		}
		out = append(out, bullet)
	}
	for len(out) < BulletCount {
		out = append(out, filler)
	}
	return out
}

// truthyString 은 빈 값(nil, "", false, 0)을 "" 로, 나머지는 문자열로 변환한다.
func truthyString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
	case float64:
		if v == 0 {
			return ""
		}
	}
	return stringify(value)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
