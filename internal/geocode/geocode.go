// Package geocode 는 Open-Meteo 지오코딩(검색/역검색)을 제공한다.
package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/upstream"
)

const (
	searchFailMessage  = "geocoding fetch failed"
	reverseFailMessage = "reverse geocoding failed"
)

// GeoResult 는 정규화된 지명이다.
type GeoResult struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Admin1   string  `json:"admin1"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone *string `json:"timezone"`
}

// Display 는 "name, admin1, country" 형식의 자동완성 라벨이다. 빈 구성 요소는 생략한다.
func (g GeoResult) Display() string {
	var b strings.Builder
	b.WriteString(g.Name)
	if g.Admin1 != "" {
		b.WriteString(", ")
		b.WriteString(g.Admin1)
	}
	if g.Country != "" {
		b.WriteString(", ")
		b.WriteString(g.Country)
	}
	return b.String()
}

// MarshalJSON 은 display 를 파생 필드로 포함한다.
func (g GeoResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string  `json:"name"`
		Country  string  `json:"country"`
		Admin1   string  `json:"admin1"`
		Lat      float64 `json:"lat"`
		Lon      float64 `json:"lon"`
		Timezone *string `json:"timezone"`
		Display  string  `json:"display"`
	}{
		Name:     g.Name,
		Country:  g.Country,
		Admin1:   g.Admin1,
		Lat:      g.Lat,
		Lon:      g.Lon,
		Timezone: g.Timezone,
		Display:  g.Display(),
	})
}

// Client 는 Open-Meteo 지오코딩 게이트웨이다.
type Client struct {
	cfg    config.GeocodeConfig
	client *http.Client
	logger *slog.Logger
}

// NewClient 는 지오코딩 게이트웨이를 생성한다.
func NewClient(cfg config.GeocodeConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		client: upstream.NewHTTPClient(cfg.TimeoutSeconds),
		logger: logger,
	}
}

type openMeteoResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// Search 는 이름으로 지명을 검색한다. 결과는 ResultLimit 개(최대 MaxGeocodeResults)로 제한된다.
func (c *Client) Search(ctx context.Context, name string) ([]GeoResult, error) {
	params := url.Values{}
	params.Set("name", strings.TrimSpace(name))
	limit := c.limit()
	params.Set("count", strconv.Itoa(limit))
	params.Set("language", c.cfg.Language)
	params.Set("format", "json")

	results, err := c.fetch(ctx, "/v1/search", params, searchFailMessage)
	if err != nil {
		c.logger.Warn("geocode_search_failed", "query", name, "err", err)
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (c *Client) limit() int {
	if c.cfg.ResultLimit <= 0 || c.cfg.ResultLimit > config.MaxGeocodeResults {
		return config.MaxGeocodeResults
	}
	return c.cfg.ResultLimit
}

// Reverse 는 좌표로 지명을 역검색한다.
func (c *Client) Reverse(ctx context.Context, lat float64, lon float64) ([]GeoResult, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	results, err := c.fetch(ctx, "/v1/reverse", params, reverseFailMessage)
	if err != nil {
		c.logger.Warn("geocode_reverse_failed", "lat", lat, "lon", lon, "err", err)
		return nil, err
	}
	return results, nil
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values, failMessage string) ([]GeoResult, error) {
	rawURL := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + params.Encode()
	body, err := upstream.Get(ctx, c.client, rawURL, failMessage)
	if err != nil {
		return nil, err
	}

	var parsed openMeteoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}

	results := make([]GeoResult, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		result := GeoResult{
			Name:    item.Name,
			Country: item.Country,
			Admin1:  item.Admin1,
			Lat:     item.Latitude,
			Lon:     item.Longitude,
		}
		if item.Timezone != "" {
			timezone := item.Timezone
			result.Timezone = &timezone
		}
		results = append(results, result)
	}
	return results, nil
}
