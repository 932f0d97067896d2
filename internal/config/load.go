package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joho/godotenv"
)

// DefaultModel 은 GEMINI_MODEL 미설정 시 사용하는 모델이다.
const DefaultModel = "gemini-2.0-flash"

// MaxGeocodeResults 는 지명 검색 결과 수의 상한이다. GEOCODE_RESULT_LIMIT 는 이 값을 넘을 수 없다.
const MaxGeocodeResults = 7

var (
	configOnce  sync.Once
	configValue *Config
)

// Load 는 환경 변수 기반 설정을 로드한다.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()
		configValue = buildConfig()
	})
	return configValue
}

// ProvideConfig 는 설정을 로드하고 검증한다.
func ProvideConfig() (*Config, error) {
	cfg := Load()
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 는 설정 유효성을 검사한다.
// API 키 누락은 요청 시점의 500 응답으로 처리하므로 여기서 막지 않는다.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Gemini.Model == "" {
		return errors.New("gemini model is empty")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}
	if c.GRPC.Enabled && (c.GRPC.Port <= 0 || c.GRPC.Port > 65535) {
		return fmt.Errorf("invalid grpc port: %d", c.GRPC.Port)
	}
	if c.Geocode.ResultLimit <= 0 || c.Geocode.ResultLimit > MaxGeocodeResults {
		return fmt.Errorf("invalid geocode result limit: %d", c.Geocode.ResultLimit)
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("invalid otel sample rate: %v", c.Telemetry.SampleRate)
	}
	return nil
}

// LogEnvStatus 는 환경 설정 상태를 로그로 남긴다.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if logger == nil || cfg == nil {
		return
	}

	logger.Debug(
		"env_status",
		"env_file", fileExists(".env"),
		"gemini_keys", len(cfg.Gemini.APIKeys),
		"primary_key", maskSecret(cfg.Gemini.PrimaryKey()),
		"model", cfg.Gemini.Model,
		"timeout", cfg.Gemini.TimeoutSeconds,
		"openweather_key", maskSecret(cfg.Weather.APIKey),
		"geocode_base_url", cfg.Geocode.BaseURL,
		"cors_origins", cfg.CORS.AllowOrigins,
		"grpc_enabled", cfg.GRPC.Enabled,
		"otel_enabled", cfg.Telemetry.Enabled,
	)

	if !cfg.Gemini.HasKey() {
		logger.Error("env_missing_gemini_api_key")
	}
	if cfg.Weather.APIKey == "" {
		logger.Warn("env_missing_openweather_key")
	}
}

func buildConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			APIKeys:         parseAPIKeys(),
			Model:           getEnvString("GEMINI_MODEL", DefaultModel),
			BaseURL:         getEnvString("GEMINI_BASE_URL", ""),
			MaxOutputTokens: max(1, getEnvInt("GEMINI_MAX_TOKENS", 400)),
			TimeoutSeconds:  max(1, getEnvInt("GEMINI_TIMEOUT", 60)),
		},
		Weather: WeatherConfig{
			APIKey:         getEnvString("OPENWEATHER_KEY", ""),
			BaseURL:        getEnvString("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
			TimeoutSeconds: max(1, getEnvInt("WEATHER_TIMEOUT", 10)),
		},
		Geocode: GeocodeConfig{
			BaseURL:        getEnvString("GEOCODE_BASE_URL", "https://geocoding-api.open-meteo.com"),
			ResultLimit:    min(getEnvNonNegativeInt("GEOCODE_RESULT_LIMIT", MaxGeocodeResults), MaxGeocodeResults),
			Language:       getEnvString("GEOCODE_LANGUAGE", "en"),
			TimeoutSeconds: max(1, getEnvInt("GEOCODE_TIMEOUT", 10)),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			LogDir:     getEnvString("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 1),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 30),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_FILE_COMPRESS", true),
		},
		HTTP: HTTPConfig{
			Host:         getEnvString("HTTP_HOST", "127.0.0.1"),
			Port:         getEnvInt("HTTP_PORT", 3000),
			HTTP2Enabled: getEnvBool("HTTP2_ENABLED", true),
			GzipEnabled:  getEnvBool("HTTP_GZIP_ENABLED", true),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		GRPC: GRPCConfig{
			Enabled: getEnvBool("GRPC_ENABLED", false),
			Host:    getEnvString("GRPC_HOST", "127.0.0.1"),
			Port:    getEnvInt("GRPC_PORT", 3001),
		},
		Telemetry: TelemetryConfig{
			Enabled:        getEnvBool("OTEL_ENABLED", false),
			ServiceName:    getEnvString("OTEL_SERVICE_NAME", "weather-assistant"),
			ServiceVersion: getEnvString("OTEL_SERVICE_VERSION", "dev"),
			Environment:    getEnvString("OTEL_ENVIRONMENT", "development"),
			OTLPEndpoint:   getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			OTLPInsecure:   getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRate:     getEnvFloat("OTEL_SAMPLE_RATE", 1.0),
		},
	}
}
