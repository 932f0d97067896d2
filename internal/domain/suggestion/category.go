package suggestion

import "strings"

// Category 는 제안 도메인이다. 값 집합은 닫혀 있다.
type Category int

const (
	Fashion Category = iota
	Agriculture
	Travel
	Music
)

// Label 은 UI 에 노출되는 다국어 이름이다.
type Label struct {
	EN string `json:"en"`
	JA string `json:"ja"`
}

type categoryEntry struct {
	id       string
	prompt   string
	fallback func(WeatherFacts) Suggestion
	label    Label
}

var categories = [...]categoryEntry{
	Fashion: {
		id:       "fashion",
		prompt:   "fashion",
		fallback: FashionFallback,
		label:    Label{EN: "Fashion", JA: "ファッション"},
	},
	Agriculture: {
		id:       "agri",
		prompt:   "agri",
		fallback: AgricultureFallback,
		label:    Label{EN: "Agriculture", JA: "農業"},
	},
	Travel: {
		id:       "travel",
		prompt:   "travel",
		fallback: TravelFallback,
		label:    Label{EN: "Travel", JA: "旅行"},
	},
	Music: {
		id:       "music",
		prompt:   "music",
		fallback: MusicFallback,
		label:    Label{EN: "Music", JA: "音楽"},
	},
}

var categoryAliases = map[string]Category{
	"fashion":     Fashion,
	"agri":        Agriculture,
	"agriculture": Agriculture,
	"travel":      Travel,
	"music":       Music,
}

// ParseCategory 는 요청 문자열을 Category 로 변환한다. 비었거나 모르는 값은 Fashion 이다.
func ParseCategory(raw string) Category {
	if category, ok := categoryAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return category
	}
	return Fashion
}

// All 은 선언 순서대로 전체 카테고리를 반환한다.
func All() []Category {
	return []Category{Fashion, Agriculture, Travel, Music}
}

func (c Category) entry() categoryEntry {
	if c < Fashion || c > Music {
		return categories[Fashion]
	}
	return categories[c]
}

// String 은 wire 식별자("fashion", "agri", ...)를 반환한다.
func (c Category) String() string { return c.entry().id }

// PromptName 은 prompts/ 아래 YAML 파일명이다.
func (c Category) PromptName() string { return c.entry().prompt }

// Label 은 en/ja 표시 이름을 반환한다.
func (c Category) Label() Label { return c.entry().label }

// Fallback 은 카테고리의 결정적 대체 제안을 만든다.
func (c Category) Fallback(weather WeatherFacts) Suggestion {
	return c.entry().fallback(weather)
}

// MarshalText 는 JSON 키/값 직렬화에 wire 식별자를 사용한다.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
