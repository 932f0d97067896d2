package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/domain/suggestion"
	"github.com/park285/weather-assistant-go/internal/gemini"
	"github.com/park285/weather-assistant-go/internal/logging"
	"github.com/park285/weather-assistant-go/internal/metrics"
	"github.com/park285/weather-assistant-go/internal/prompt"
	"github.com/park285/weather-assistant-go/internal/telemetry"
	"github.com/park285/weather-assistant-go/internal/translate"
	"github.com/park285/weather-assistant-go/internal/usecase/chat"
	"github.com/park285/weather-assistant-go/internal/usecase/generate"
)

// ProvideLogger: 로거를 구성해 반환합니다.
// OTel이 활성화된 경우 로그에 trace_id/span_id가 자동으로 추가됩니다.
func ProvideLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewLoggerWithOTel(cfg.Logging, cfg.Telemetry.Enabled)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// ProvideTelemetry: OTLP trace provider 를 초기화합니다. 비활성 시 no-op 입니다.
func ProvideTelemetry(ctx context.Context, cfg *config.Config) (*telemetry.Provider, error) {
	provider, err := telemetry.NewProvider(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	return provider, nil
}

// ProvideGeminiClient 는 설정의 Gemini 섹션으로 게이트웨이를 만든다.
func ProvideGeminiClient(cfg *config.Config, metricsStore *metrics.Store, logger *slog.Logger) (*gemini.Client, error) {
	client, err := gemini.NewClient(cfg.Gemini, metricsStore, logger)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return client, nil
}

// ProvidePrompts 는 내장 프롬프트 번들을 반환한다.
func ProvidePrompts() (*prompt.Bundle, error) {
	bundle, err := suggestion.Prompts()
	if err != nil {
		return nil, fmt.Errorf("prompts: %w", err)
	}
	return bundle, nil
}

// ProvideTranslator 는 번역 게이트웨이를 만든다.
func ProvideTranslator(client *gemini.Client, prompts *prompt.Bundle, metricsStore *metrics.Store, logger *slog.Logger) (*translate.Translator, error) {
	translator, err := translate.New(client, prompts, metricsStore, logger)
	if err != nil {
		return nil, fmt.Errorf("translator: %w", err)
	}
	return translator, nil
}

// ProvideGenerateService 는 제안 생성 유스케이스를 만든다. 응답 메타의 모델명은 Gemini 기본 모델이다.
func ProvideGenerateService(
	client *gemini.Client,
	translator *translate.Translator,
	prompts *prompt.Bundle,
	metricsStore *metrics.Store,
	logger *slog.Logger,
) (*generate.Service, error) {
	service, err := generate.New(client, translator, prompts, metricsStore, client.DefaultModel(), logger)
	if err != nil {
		return nil, fmt.Errorf("generate service: %w", err)
	}
	return service, nil
}

// ProvideChatService 는 후속 대화 유스케이스를 만든다.
func ProvideChatService(
	client *gemini.Client,
	translator *translate.Translator,
	prompts *prompt.Bundle,
	logger *slog.Logger,
) (*chat.Service, error) {
	service, err := chat.New(client, translator, prompts, logger)
	if err != nil {
		return nil, fmt.Errorf("chat service: %w", err)
	}
	return service, nil
}

// ProvideWeatherConfig 는 Weather 섹션을 꺼낸다.
func ProvideWeatherConfig(cfg *config.Config) config.WeatherConfig {
	return cfg.Weather
}

// ProvideGeocodeConfig 는 Geocode 섹션을 꺼낸다.
func ProvideGeocodeConfig(cfg *config.Config) config.GeocodeConfig {
	return cfg.Geocode
}
