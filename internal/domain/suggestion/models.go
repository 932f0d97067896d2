package suggestion

import "strconv"

// Suggestion 은 사용자에게 반환되는 제안 카드다. Bullets 는 항상 3개다.
type Suggestion struct {
	Title             string   `json:"title"`
	Bullets           []string `json:"bullets"`
	Summary           string   `json:"summary"`
	Reason            string   `json:"reason"`
	TranslationFailed bool     `json:"_translation_failed,omitempty"`
}

// WeatherFacts 는 프롬프트와 대체 제안에 쓰이는 날씨 요약이다.
// Temp, Wind 가 nil 이면 값을 모르는 것이며 0 과 구분된다.
type WeatherFacts struct {
	City      string   `json:"city" mapstructure:"city"`
	Temp      *float64 `json:"temp" mapstructure:"temp"`
	Condition string   `json:"condition" mapstructure:"condition"`
	Wind      *float64 `json:"wind" mapstructure:"wind"`
}

// Location 은 도시명이 없으면 "location" 을 반환한다.
func (w WeatherFacts) Location() string {
	if w.City == "" {
		return "location"
	}
	return w.City
}

// FormatNumber 는 nil 이면 "N/A", 아니면 최소 자릿수 표기를 반환한다.
func FormatNumber(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
