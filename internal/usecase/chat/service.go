package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	chatdomain "github.com/park285/weather-assistant-go/internal/domain/chat"
	"github.com/park285/weather-assistant-go/internal/domain/suggestion"
	"github.com/park285/weather-assistant-go/internal/gemini"
	"github.com/park285/weather-assistant-go/internal/lang"
	"github.com/park285/weather-assistant-go/internal/llm"
	"github.com/park285/weather-assistant-go/internal/prompt"
)

const (
	// Temperature 는 채팅 응답 온도다.
	Temperature float32 = 0.3
	// MaxOutputTokens 는 영어 응답 토큰 상한이다.
	MaxOutputTokens = 800
	// DefaultCategory 는 context.category 가 없을 때의 주제다.
	DefaultCategory = "general"
)

// Translator 는 채팅 흐름에 필요한 번역 기능이다.
type Translator interface {
	ToEnglish(ctx context.Context, text string) (llm.Outcome[string], error)
	ToJapanese(ctx context.Context, text string) (llm.Outcome[string], error)
}

// Context 는 대화 주제와 날씨 맥락이다.
type Context struct {
	Category string
	Weather  suggestion.WeatherFacts
}

// Request 는 채팅 입력이다.
type Request struct {
	History []chatdomain.Message
	Message string
	Context Context
}

// Meta 는 응답 메타데이터다.
type Meta struct {
	DetectedUserLanguage string `json:"detectedUserLanguage"`
	MessageTranslated    bool   `json:"messageTranslated"`
	GeminiStatus         int    `json:"geminiStatus"`
}

// Result 는 영어 응답과 일본어 번역이다.
type Result struct {
	MessageEN string `json:"message_en"`
	ReplyEN   string `json:"reply_en"`
	ReplyJP   string `json:"reply_jp"`
	Raw       string `json:"raw"`
	Meta      Meta   `json:"_meta"`
}

// Service: 날씨 맥락을 공유하는 후속 대화를 구현합니다.
type Service struct {
	llm        gemini.Generator
	translator Translator
	prompts    *prompt.Bundle
	logger     *slog.Logger
}

// New: 채팅 Service 를 생성합니다.
func New(generator gemini.Generator, translator Translator, prompts *prompt.Bundle, logger *slog.Logger) (*Service, error) {
	if generator == nil || translator == nil {
		return nil, errors.New("generator and translator are required")
	}
	if prompts == nil {
		return nil, errors.New("prompts are nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{llm: generator, translator: translator, prompts: prompts, logger: logger}, nil
}

// Reply: 메시지를 영어로 맞춘 뒤 한 번 응답을 생성하고, 그 응답을 일본어로 번역합니다.
// 일본어 번역 실패는 빈 reply_jp 로 흡수합니다.
func (s *Service) Reply(ctx context.Context, req Request) (Result, error) {
	tag := lang.Detect(req.Message)
	result := Result{MessageEN: req.Message, Meta: Meta{DetectedUserLanguage: lang.Code(tag)}}

	if tag == language.Japanese {
		translated, err := s.translator.ToEnglish(ctx, req.Message)
		switch {
		case err != nil && errors.Is(err, gemini.ErrMissingAPIKey):
			return Result{}, err
		case err != nil:
			s.logger.Warn("chat_translate_message_failed", "err", err)
		default:
			result.MessageEN = translated.Value
			result.Meta.MessageTranslated = !translated.IsFallback()
		}
	}

	if n := chatdomain.NonEnglishTurns(req.History); n > 0 {
		s.logger.Warn("chat_history_non_english", "turns", n)
	}

	chatPrompt, err := s.buildPrompt(req, result.MessageEN)
	if err != nil {
		return Result{}, err
	}

	response, err := s.llm.Generate(ctx, gemini.Request{
		Prompt:          chatPrompt,
		Task:            llm.TaskChat,
		Temperature:     Temperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return Result{}, err
	}
	result.Meta.GeminiStatus = response.Status
	result.Raw = response.Raw
	result.ReplyEN = strings.TrimSpace(response.Raw)

	if result.ReplyEN == "" {
		s.logger.Warn("chat_empty_reply", "status", response.Status)
		return result, nil
	}

	translated, err := s.translator.ToJapanese(ctx, result.ReplyEN)
	if err != nil {
		s.logger.Warn("chat_translate_reply_failed", "err", err)
		return result, nil
	}
	result.ReplyJP = translated.Value
	return result, nil
}

func (s *Service) buildPrompt(req Request, messageEN string) (string, error) {
	category := strings.TrimSpace(req.Context.Category)
	if category == "" {
		category = DefaultCategory
	}
	weather := req.Context.Weather
	city := weather.City
	if city == "" {
		city = "unknown"
	}
	condition := weather.Condition
	if condition == "" {
		condition = "N/A"
	}

	return s.prompts.Render(suggestion.PromptChat, map[string]string{
		"category":  category,
		"city":      city,
		"temp":      suggestion.FormatNumber(weather.Temp),
		"condition": condition,
		"wind":      suggestion.FormatNumber(weather.Wind),
		"history":   chatdomain.RenderHistory(req.History),
		"message":   messageEN,
	})
}
