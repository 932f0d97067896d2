//go:build !wireinject

package di

import (
	"context"
	"fmt"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/geocode"
	"github.com/park285/weather-assistant-go/internal/grpcserver"
	"github.com/park285/weather-assistant-go/internal/handler"
	"github.com/park285/weather-assistant-go/internal/metrics"
	"github.com/park285/weather-assistant-go/internal/server"
	"github.com/park285/weather-assistant-go/internal/weather"
)

// InitializeApp 은 애플리케이션 의존성을 초기화하고 App 인스턴스를 반환한다.
func InitializeApp(ctx context.Context) (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	telemetryProvider, err := ProvideTelemetry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	metricsStore := metrics.NewStore()

	geminiClient, err := ProvideGeminiClient(cfg, metricsStore, logger)
	if err != nil {
		return nil, err
	}

	prompts, err := ProvidePrompts()
	if err != nil {
		return nil, err
	}

	translator, err := ProvideTranslator(geminiClient, prompts, metricsStore, logger)
	if err != nil {
		return nil, err
	}

	generateService, err := ProvideGenerateService(geminiClient, translator, prompts, metricsStore, logger)
	if err != nil {
		return nil, err
	}

	chatService, err := ProvideChatService(geminiClient, translator, prompts, logger)
	if err != nil {
		return nil, err
	}

	weatherClient := weather.NewClient(ProvideWeatherConfig(cfg), logger)
	geocodeClient := geocode.NewClient(ProvideGeocodeConfig(cfg), logger)

	suggestionHandler := handler.NewSuggestionHandler(generateService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	locationHandler := handler.NewLocationHandler(weatherClient, geocodeClient, logger)

	router := handler.NewRouter(cfg, logger, metricsStore, suggestionHandler, chatHandler, locationHandler)
	httpServer := server.NewHTTPServer(cfg, router)

	grpcServer, err := grpcserver.NewServer(cfg, logger)
	if err != nil {
		_ = telemetryProvider.Shutdown(ctx)
		return nil, fmt.Errorf("grpc server: %w", err)
	}

	return NewApp(httpServer, grpcServer, telemetryProvider, logger, cfg), nil
}
