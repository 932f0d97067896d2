package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/llm"
	"github.com/park285/weather-assistant-go/internal/metrics"
)

func TestHealthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Gemini: config.GeminiConfig{
			APIKeys: nil,
			Model:   "gemini-test",
		},
		HTTP: config.HTTPConfig{HTTP2Enabled: true},
	}

	router := gin.New()
	RegisterHealthRoutes(router, cfg, metrics.NewStore())

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}

	liveReq := httptest.NewRequest(http.MethodGet, "/health", nil)
	liveResp := httptest.NewRecorder()
	router.ServeHTTP(liveResp, liveReq)
	if liveResp.Code != http.StatusOK {
		t.Fatalf("expected liveness 200, got %d", liveResp.Code)
	}

	modelReq := httptest.NewRequest(http.MethodGet, "/health/models", nil)
	modelResp := httptest.NewRecorder()
	router.ServeHTTP(modelResp, modelReq)
	if modelResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", modelResp.Code)
	}

	var payload ModelConfigResponse
	if err := json.Unmarshal(modelResp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Model != "gemini-test" || payload.APIKeyCount != 0 {
		t.Fatalf("unexpected models: %+v", payload)
	}
	if payload.TransportMode != "h2c" {
		t.Fatalf("expected h2c, got %s", payload.TransportMode)
	}
}

func TestMetricsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := metrics.NewStore()
	store.RecordSuccess(llm.TaskGenerate, 10*time.Millisecond, llm.Usage{InputTokens: 5, OutputTokens: 7, TotalTokens: 12})
	store.RecordFallback("domain")

	router := gin.New()
	RegisterHealthRoutes(router, &config.Config{}, store)

	promResp := httptest.NewRecorder()
	router.ServeHTTP(promResp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if promResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", promResp.Code)
	}
	if !strings.Contains(promResp.Body.String(), `weather_assistant_llm_calls_total{outcome="ok",task="generate"} 1`) {
		t.Fatalf("missing llm call counter:\n%s", promResp.Body.String())
	}

	snapResp := httptest.NewRecorder()
	router.ServeHTTP(snapResp, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	var snapshot map[string]float64
	if err := json.Unmarshal(snapResp.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snapshot["fallbacks_domain"] != 1 || snapshot["total_fallbacks"] != 1 {
		t.Fatalf("unexpected snapshot: %v", snapshot)
	}
}
