package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/park285/weather-assistant-go/internal/geocode"
	"github.com/park285/weather-assistant-go/internal/handler/shared"
	"github.com/park285/weather-assistant-go/internal/httperror"
	"github.com/park285/weather-assistant-go/internal/weather"
)

// GeocodeResponse 는 지오코딩 결과 목록이다.
type GeocodeResponse struct {
	Results []geocode.GeoResult `json:"results"`
}

// LocationHandler 는 날씨/지오코딩 조회 핸들러다.
type LocationHandler struct {
	weather  WeatherSource
	geocoder Geocoder
	logger   *slog.Logger
}

// NewLocationHandler 는 위치 핸들러를 생성한다.
func NewLocationHandler(weatherSource WeatherSource, geocoder Geocoder, logger *slog.Logger) *LocationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationHandler{weather: weatherSource, geocoder: geocoder, logger: logger}
}

// RegisterRoutes 는 위치 라우트를 등록한다.
func (h *LocationHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/api")
	group.GET("/weather", h.handleWeather)
	group.GET("/geocode", h.handleGeocode)
}

func (h *LocationHandler) handleWeather(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	coords, hasCoords, err := shared.ParseCoordinates(c)
	if city == "" && err != nil {
		writeError(c, err)
		return
	}
	if city == "" && !hasCoords {
		writeError(c, httperror.NewMissingField("city or lat+lon"))
		return
	}

	facts, err := h.weather.Current(c.Request.Context(), weather.Query{City: city, Lat: coords.Lat, Lon: coords.Lon})
	if err != nil {
		shared.LogError(h.logger, "weather_fetch", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, facts)
}

func (h *LocationHandler) handleGeocode(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	coords, hasCoords, err := shared.ParseCoordinates(c)
	if query == "" && err != nil {
		writeError(c, err)
		return
	}
	if query == "" && !hasCoords {
		writeError(c, httperror.NewMissingField("query or lat+lon"))
		return
	}

	var results []geocode.GeoResult
	if query != "" {
		results, err = h.geocoder.Search(c.Request.Context(), query)
	} else {
		results, err = h.geocoder.Reverse(c.Request.Context(), coords.Lat, coords.Lon)
	}
	if err != nil {
		shared.LogError(h.logger, "geocode_fetch", err)
		writeError(c, err)
		return
	}
	if results == nil {
		results = []geocode.GeoResult{}
	}

	c.JSON(http.StatusOK, GeocodeResponse{Results: results})
}
