package generate

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/park285/weather-assistant-go/internal/domain/suggestion"
	"github.com/park285/weather-assistant-go/internal/gemini"
	"github.com/park285/weather-assistant-go/internal/lang"
	"github.com/park285/weather-assistant-go/internal/llm"
	"github.com/park285/weather-assistant-go/internal/metrics"
	"github.com/park285/weather-assistant-go/internal/prompt"
)

const (
	// Temperature 는 도메인 제안 생성 온도다.
	Temperature float32 = 0.4
	// RawSnippetRunes 는 메타데이터에 싣는 원문 길이 상한이다.
	RawSnippetRunes = 800
	// FallbackSuggestion 은 제안 대체값 메트릭 kind 다.
	FallbackSuggestion = "suggestion"
)

// Translator 는 생성 흐름에 필요한 번역 기능이다.
type Translator interface {
	ToEnglish(ctx context.Context, text string) (llm.Outcome[string], error)
	ObjectToJapanese(ctx context.Context, obj any) (llm.Outcome[map[string]any], error)
}

// Request 는 제안 생성 입력이다.
type Request struct {
	Category suggestion.Category
	UserText string
	Weather  suggestion.WeatherFacts
}

// Meta 는 응답 메타데이터다.
type Meta struct {
	Model                string `json:"model"`
	DetectedUserLanguage string `json:"detectedUserLanguage"`
	DomainParsed         bool   `json:"domainParsed"`
	DomainRawSnippet     string `json:"domainRawSnippet"`
	TranslationSuccess   bool   `json:"translationSuccess"`
}

// Result 는 영어/일본어 제안 쌍이다.
type Result struct {
	EN   suggestion.Suggestion `json:"en"`
	JP   suggestion.Suggestion `json:"jp"`
	Meta Meta                  `json:"_meta"`
}

// Service: 날씨 기반 카테고리 제안 생성 흐름을 구현합니다.
type Service struct {
	llm        gemini.Generator
	translator Translator
	prompts    *prompt.Bundle
	metrics    *metrics.Store
	model      string
	logger     *slog.Logger
}

// New: 제안 생성 Service 를 생성합니다.
func New(
	generator gemini.Generator,
	translator Translator,
	prompts *prompt.Bundle,
	metricsStore *metrics.Store,
	model string,
	logger *slog.Logger,
) (*Service, error) {
	if generator == nil || translator == nil {
		return nil, errors.New("generator and translator are required")
	}
	if prompts == nil {
		return nil, errors.New("prompts are nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		llm:        generator,
		translator: translator,
		prompts:    prompts,
		metrics:    metricsStore,
		model:      model,
		logger:     logger,
	}, nil
}

// Generate: 감지 → (일→영) → 도메인 프롬프트 → 추출/정규화 → 영→일 번역 순으로 순차 실행합니다.
// 번역/파싱 실패는 대체값으로 흡수하고, API 키 누락만 오류로 반환합니다.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	tag := lang.Detect(req.UserText)
	meta := Meta{Model: s.model, DetectedUserLanguage: lang.Code(tag)}

	userText := req.UserText
	if tag == language.Japanese {
		translated, err := s.translator.ToEnglish(ctx, req.UserText)
		if err != nil {
			if isFatal(err) {
				return Result{}, err
			}
			s.logger.Warn("generate_translate_input_failed", "err", err)
		} else {
			userText = translated.Value
		}
	}

	domainPrompt, err := suggestion.BuildDomainPrompt(s.prompts, req.Category, req.Weather, userText)
	if err != nil {
		return Result{}, err
	}

	raw := ""
	response, err := s.llm.Generate(ctx, gemini.Request{
		Prompt:      domainPrompt,
		Task:        llm.TaskGenerate,
		Temperature: Temperature,
	})
	switch {
	case err != nil && isFatal(err):
		return Result{}, err
	case err != nil:
		s.logger.Warn("generate_domain_call_failed", "category", req.Category.String(), "err", err)
	default:
		raw = response.Raw
		if response.Model != "" {
			meta.Model = response.Model
		}
	}
	meta.DomainRawSnippet = llm.TrimRunes(raw, RawSnippetRunes)

	parsed := llm.ExtractJSON(raw)
	meta.DomainParsed = parsed != nil
	en := suggestion.Normalize(parsed, req.Category, req.Weather, language.English)
	if en.IsFallback() {
		s.recordFallback(FallbackSuggestion)
		s.logger.Info("generate_suggestion_fallback",
			"category", req.Category.String(),
			"reason", en.Reason(),
			"status", response.Status,
		)
	}

	jp, err := s.translateSuggestion(ctx, req, en.Value)
	if err != nil {
		return Result{}, err
	}
	meta.TranslationSuccess = !jp.IsFallback()

	return Result{EN: en.Value, JP: jp.Value, Meta: meta}, nil
}

// translateSuggestion 은 번역 결과를 다시 정규화한다. 실패 시 영어 제안에 실패 플래그를 붙인다.
func (s *Service) translateSuggestion(ctx context.Context, req Request, en suggestion.Suggestion) (llm.Outcome[suggestion.Suggestion], error) {
	translated, err := s.translator.ObjectToJapanese(ctx, en)
	if err != nil {
		if isFatal(err) {
			return llm.Outcome[suggestion.Suggestion]{}, err
		}
		s.logger.Warn("generate_translation_failed", "err", err)
	}

	if err != nil || translated.IsFallback() || translated.Value == nil {
		failed := en
		failed.TranslationFailed = true
		reason := translated.Reason()
		if reason == "" && err != nil {
			reason = err.Error()
		}
		return llm.Fallback(failed, reason), nil
	}

	jp := suggestion.Normalize(translated.Value, req.Category, req.Weather, language.Japanese)
	return llm.Ok(jp.Value), nil
}

func (s *Service) recordFallback(kind string) {
	if s.metrics != nil {
		s.metrics.RecordFallback(kind)
	}
}

// isFatal 은 대체값으로 흡수하지 않는 오류다.
func isFatal(err error) bool {
	return errors.Is(err, gemini.ErrMissingAPIKey) || errors.Is(err, gemini.ErrInvalidModel)
}
