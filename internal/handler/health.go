package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/health"
	"github.com/park285/weather-assistant-go/internal/metrics"
)

// ModelConfigResponse: 모델 설정 응답입니다.
type ModelConfigResponse struct {
	Model           string `json:"model"`
	MaxOutputTokens int    `json:"max_output_tokens"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	APIKeyCount     int    `json:"api_key_count"`
	HTTP2Enabled    bool   `json:"http2_enabled"`
	TransportMode   string `json:"transport_mode"`
}

// RegisterHealthRoutes: 상태 확인 및 메트릭 라우트를 등록합니다.
func RegisterHealthRoutes(router gin.IRouter, cfg *config.Config, metricsStore *metrics.Store) {
	router.GET("/health", func(c *gin.Context) {
		// Liveness: upstream 상태로 다운 판정되지 않도록 shallow로 유지합니다.
		payload := health.Collect(c.Request.Context(), cfg, false)
		c.JSON(http.StatusOK, payload)
	})

	router.GET("/health/ready", func(c *gin.Context) {
		payload := health.Collect(c.Request.Context(), cfg, true)
		status := http.StatusOK
		if payload.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, payload)
	})

	router.GET("/health/models", func(c *gin.Context) {
		transportMode := "h1"
		if cfg.HTTP.HTTP2Enabled {
			transportMode = "h2c"
		}

		c.JSON(http.StatusOK, ModelConfigResponse{
			Model:           cfg.Gemini.Model,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
			TimeoutSeconds:  cfg.Gemini.TimeoutSeconds,
			APIKeyCount:     len(cfg.Gemini.APIKeys),
			HTTP2Enabled:    cfg.HTTP.HTTP2Enabled,
			TransportMode:   transportMode,
		})
	})

	if metricsStore == nil {
		return
	}

	// Prometheus 메트릭 (장기 히스토리 분석용)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metricsStore.Registry(), promhttp.HandlerOpts{})))

	router.GET("/api/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, metricsStore.Snapshot())
	})
}
