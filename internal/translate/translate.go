// Package translate 는 Gemini 를 이용한 일본어/영어 번역을 제공한다.
package translate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/park285/weather-assistant-go/internal/domain/suggestion"
	"github.com/park285/weather-assistant-go/internal/gemini"
	"github.com/park285/weather-assistant-go/internal/llm"
	"github.com/park285/weather-assistant-go/internal/metrics"
	"github.com/park285/weather-assistant-go/internal/prompt"
)

// 번역 호출 파라미터
const (
	Temperature     float32 = 0.2
	MaxOutputTokens         = 400
)

// 대체 사유
const (
	ReasonEmpty    = "empty translation"
	ReasonUnparsed = "unparsed translation"
)

// 메트릭 fallback kind
const (
	FallbackToEnglish        = "translation_en"
	FallbackToJapanese       = "translation_ja"
	FallbackObjectToJapanese = "translation_object_ja"
)

// Translator 는 번역 게이트웨이다.
type Translator struct {
	llm     gemini.Generator
	prompts *prompt.Bundle
	metrics *metrics.Store
	logger  *slog.Logger
}

// New 는 Translator 를 생성한다.
func New(generator gemini.Generator, prompts *prompt.Bundle, metricsStore *metrics.Store, logger *slog.Logger) (*Translator, error) {
	if generator == nil {
		return nil, errors.New("generator is nil")
	}
	if prompts == nil {
		return nil, errors.New("prompts are nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{llm: generator, prompts: prompts, metrics: metricsStore, logger: logger}, nil
}

// ToEnglish: 일본어 텍스트를 영어로 번역합니다. 응답이 비면 원문을 Fallback 으로 반환합니다.
func (t *Translator) ToEnglish(ctx context.Context, text string) (llm.Outcome[string], error) {
	translated, err := t.plainText(ctx, suggestion.PromptTranslateToEN, text)
	if err != nil {
		return llm.Fallback(text, err.Error()), err
	}
	if translated == "" {
		t.recordFallback(FallbackToEnglish)
		return llm.Fallback(text, ReasonEmpty), nil
	}
	return llm.Ok(translated), nil
}

// ToJapanese: 영어 텍스트를 일본어로 번역합니다. 응답이 비면 빈 문자열을 Fallback 으로 반환합니다.
func (t *Translator) ToJapanese(ctx context.Context, text string) (llm.Outcome[string], error) {
	translated, err := t.plainText(ctx, suggestion.PromptTranslateTextJA, text)
	if err != nil {
		return llm.Fallback("", err.Error()), err
	}
	if translated == "" {
		t.recordFallback(FallbackToJapanese)
		return llm.Fallback("", ReasonEmpty), nil
	}
	return llm.Ok(translated), nil
}

// ObjectToJapanese: 객체를 들여쓴 JSON 으로 직렬화해 값만 번역하도록 요청합니다.
// 응답에서 JSON 을 추출하지 못하면 nil 을 Fallback 으로 반환합니다.
func (t *Translator) ObjectToJapanese(ctx context.Context, obj any) (llm.Outcome[map[string]any], error) {
	var encoded bytes.Buffer
	encoder := json.NewEncoder(&encoded)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(obj); err != nil {
		return llm.Fallback[map[string]any](nil, "encode"), fmt.Errorf("encode translation input: %w", err)
	}

	rendered, err := t.prompts.Render(suggestion.PromptTranslateObjectJA, map[string]string{"json": strings.TrimSpace(encoded.String())})
	if err != nil {
		return llm.Fallback[map[string]any](nil, "prompt"), err
	}

	result, err := t.llm.Generate(ctx, gemini.Request{
		Prompt:          rendered,
		Task:            llm.TaskTranslate,
		Temperature:     Temperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return llm.Fallback[map[string]any](nil, err.Error()), err
	}

	parsed := llm.ExtractJSON(result.Raw)
	if parsed == nil {
		t.recordFallback(FallbackObjectToJapanese)
		t.logger.Warn("translation_object_unparsed",
			"ok", result.OK,
			"status", result.Status,
			"raw_len", len(result.Raw),
		)
		return llm.Fallback[map[string]any](nil, ReasonUnparsed), nil
	}
	return llm.Ok(parsed), nil
}

func (t *Translator) plainText(ctx context.Context, promptName string, text string) (string, error) {
	rendered, err := t.prompts.Render(promptName, map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	result, err := t.llm.Generate(ctx, gemini.Request{
		Prompt:          rendered,
		Task:            llm.TaskTranslate,
		Temperature:     Temperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	if !result.OK {
		t.logger.Warn("translation_upstream_error", "prompt", promptName, "status", result.Status)
	}
	return strings.TrimSpace(result.Raw), nil
}

func (t *Translator) recordFallback(kind string) {
	if t.metrics != nil {
		t.metrics.RecordFallback(kind)
	}
}
