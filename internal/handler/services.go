package handler

import (
	"context"

	"github.com/park285/weather-assistant-go/internal/geocode"
	"github.com/park285/weather-assistant-go/internal/usecase/chat"
	"github.com/park285/weather-assistant-go/internal/usecase/generate"
	"github.com/park285/weather-assistant-go/internal/weather"
)

// SuggestionGenerator 는 /api/generate 가 의존하는 유스케이스다.
type SuggestionGenerator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

// ChatReplier 는 /api/chat 이 의존하는 유스케이스다.
type ChatReplier interface {
	Reply(ctx context.Context, req chat.Request) (chat.Result, error)
}

// WeatherSource 는 현재 날씨 조회 게이트웨이다.
type WeatherSource interface {
	Current(ctx context.Context, query weather.Query) (weather.Facts, error)
}

// Geocoder 는 도시 검색/역지오코딩 게이트웨이다.
type Geocoder interface {
	Search(ctx context.Context, name string) ([]geocode.GeoResult, error)
	Reverse(ctx context.Context, lat float64, lon float64) ([]geocode.GeoResult, error)
}
