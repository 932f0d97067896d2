package suggestion

import (
	"embed"
	"fmt"
	"sync"

	"github.com/park285/weather-assistant-go/internal/prompt"
)

//go:embed prompts/*.yml
var promptFS embed.FS

// 번역/채팅 프롬프트 이름.
const (
	PromptTranslateToEN     = "translate_to_en"
	PromptTranslateObjectJA = "translate_object_ja"
	PromptTranslateTextJA   = "translate_text_ja"
	PromptChat              = "chat"

	promptWeatherSummary = "weather_summary"
)

var (
	promptsOnce   sync.Once
	promptsBundle *prompt.Bundle
	promptsErr    error
)

// Prompts 는 내장 프롬프트 번들을 한 번만 로드해 반환한다.
func Prompts() (*prompt.Bundle, error) {
	promptsOnce.Do(func() {
		promptsBundle, promptsErr = prompt.LoadBundle(promptFS, "prompts", "suggestion")
		if promptsErr != nil {
			return
		}
		for _, category := range All() {
			if !promptsBundle.Has(category.PromptName()) {
				promptsErr = fmt.Errorf("suggestion prompt missing for category %s", category)
				return
			}
		}
	})
	return promptsBundle, promptsErr
}

// WeatherSummary 는 도메인 프롬프트에 삽입되는 한 줄 날씨 요약을 만든다.
func WeatherSummary(bundle *prompt.Bundle, weather WeatherFacts) (string, error) {
	city := weather.City
	if city == "" {
		city = "unknown"
	}
	condition := weather.Condition
	if condition == "" {
		condition = "unknown"
	}
	return bundle.Render(promptWeatherSummary, map[string]string{
		"city":      city,
		"temp":      FormatNumber(weather.Temp),
		"condition": condition,
		"wind":      FormatNumber(weather.Wind),
	})
}

// BuildDomainPrompt: 카테고리 프롬프트에 날씨 요약과 영어 사용자 요청을 채웁니다.
func BuildDomainPrompt(bundle *prompt.Bundle, category Category, weather WeatherFacts, userText string) (string, error) {
	summary, err := WeatherSummary(bundle, weather)
	if err != nil {
		return "", err
	}
	return bundle.Render(category.PromptName(), map[string]string{
		"weather": summary,
		"user":    userText,
	})
}
