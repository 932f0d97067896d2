//go:build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/geocode"
	"github.com/park285/weather-assistant-go/internal/grpcserver"
	"github.com/park285/weather-assistant-go/internal/handler"
	"github.com/park285/weather-assistant-go/internal/metrics"
	"github.com/park285/weather-assistant-go/internal/server"
	"github.com/park285/weather-assistant-go/internal/usecase/chat"
	"github.com/park285/weather-assistant-go/internal/usecase/generate"
	"github.com/park285/weather-assistant-go/internal/weather"
)

func InitializeApp(ctx context.Context) (*App, error) {
	wire.Build(
		config.ProvideConfig,
		ProvideLogger,
		ProvideTelemetry,
		metrics.NewStore,
		ProvideGeminiClient,
		ProvidePrompts,
		ProvideTranslator,
		ProvideGenerateService,
		ProvideChatService,
		ProvideWeatherConfig,
		ProvideGeocodeConfig,
		weather.NewClient,
		geocode.NewClient,
		wire.Bind(new(handler.SuggestionGenerator), new(*generate.Service)),
		wire.Bind(new(handler.ChatReplier), new(*chat.Service)),
		wire.Bind(new(handler.WeatherSource), new(*weather.Client)),
		wire.Bind(new(handler.Geocoder), new(*geocode.Client)),
		handler.NewSuggestionHandler,
		handler.NewChatHandler,
		handler.NewLocationHandler,
		handler.NewRouter,
		server.NewHTTPServer,
		grpcserver.NewServer,
		NewApp,
	)
	return nil, nil
}
