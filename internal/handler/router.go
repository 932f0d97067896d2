package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/metrics"
	"github.com/park285/weather-assistant-go/internal/middleware"
)

const defaultServiceName = "weather-assistant"

// NewRouter 는 HTTP 라우터를 구성한다.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	metricsStore *metrics.Store,
	suggestionHandler *SuggestionHandler,
	chatHandler *ChatHandler,
	locationHandler *LocationHandler,
) *gin.Engine {
	setGinMode(cfg.Logging.Level)

	router := gin.New()
	// OTel 미들웨어는 가장 앞에 둔다.
	if cfg.Telemetry.Enabled {
		serviceName := cfg.Telemetry.ServiceName
		if serviceName == "" {
			serviceName = defaultServiceName
		}
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg.CORS)),
	)
	if cfg.HTTP.GzipEnabled {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	RegisterHealthRoutes(router, cfg, metricsStore)
	suggestionHandler.RegisterRoutes(router)
	chatHandler.RegisterRoutes(router)
	locationHandler.RegisterRoutes(router)

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAll() || len(cfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowOrigins = cfg.AllowOrigins
	return corsCfg
}

func setGinMode(level string) {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
