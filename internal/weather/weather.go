// Package weather 는 OpenWeatherMap 현재 날씨 조회를 제공한다.
package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/domain/suggestion"
	"github.com/park285/weather-assistant-go/internal/upstream"
)

// ErrMissingAPIKey 는 OpenWeatherMap 키가 없을 때 반환된다.
var ErrMissingAPIKey = errors.New("OPENWEATHER_KEY not configured")

const failMessage = "weather fetch failed"

// Query 는 도시명 또는 좌표 조회 조건이다. City 가 있으면 좌표보다 우선한다.
type Query struct {
	City string
	Lat  float64
	Lon  float64
}

// Facts 는 정규화된 현재 날씨다.
type Facts struct {
	City      string          `json:"city"`
	Temp      *float64        `json:"temp"`
	Condition string          `json:"condition"`
	Wind      *float64        `json:"wind"`
	Icon      *string         `json:"icon"`
	Raw       json.RawMessage `json:"raw"`
}

// WeatherFacts 는 제안 생성용 날씨 요약으로 변환한다.
func (f Facts) WeatherFacts() suggestion.WeatherFacts {
	return suggestion.WeatherFacts{
		City:      f.City,
		Temp:      f.Temp,
		Condition: f.Condition,
		Wind:      f.Wind,
	}
}

// Client 는 OpenWeatherMap 게이트웨이다.
type Client struct {
	cfg    config.WeatherConfig
	client *http.Client
	logger *slog.Logger
}

// NewClient 는 날씨 게이트웨이를 생성한다.
func NewClient(cfg config.WeatherConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		client: upstream.NewHTTPClient(cfg.TimeoutSeconds),
		logger: logger,
	}
}

// HasKey 는 API 키 설정 여부를 반환한다.
func (c *Client) HasKey() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

type owmResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// Current 는 현재 날씨를 조회한다. non-2xx 응답은 *upstream.Error 다.
func (c *Client) Current(ctx context.Context, query Query) (Facts, error) {
	if !c.HasKey() {
		return Facts{}, ErrMissingAPIKey
	}

	body, err := upstream.Get(ctx, c.client, c.buildURL(query), failMessage)
	if err != nil {
		c.logger.Warn("weather_fetch_failed", "city", query.City, "err", err)
		return Facts{}, err
	}

	var parsed owmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Facts{}, fmt.Errorf("decode weather response: %w", err)
	}

	facts := Facts{
		City: parsed.Name,
		Temp: parsed.Main.Temp,
		Wind: parsed.Wind.Speed,
		Raw:  json.RawMessage(body),
	}
	if facts.City == "" {
		facts.City = parsed.Sys.Country
	}
	if len(parsed.Weather) > 0 {
		facts.Condition = parsed.Weather[0].Description
		if icon := parsed.Weather[0].Icon; icon != "" {
			facts.Icon = &icon
		}
	}
	return facts, nil
}

func (c *Client) buildURL(query Query) string {
	params := url.Values{}
	if city := strings.TrimSpace(query.City); city != "" {
		params.Set("q", city)
	} else {
		params.Set("lat", strconv.FormatFloat(query.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(query.Lon, 'f', -1, 64))
	}
	params.Set("units", "metric")
	params.Set("appid", c.cfg.APIKey)
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/data/2.5/weather?" + params.Encode()
}
