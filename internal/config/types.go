package config

import "strings"

// GeminiConfig 는 Gemini 호출 설정이다.
type GeminiConfig struct {
	APIKeys         []string
	Model           string
	BaseURL         string
	MaxOutputTokens int
	TimeoutSeconds  int
}

// PrimaryKey 는 기본 API 키를 반환한다.
func (g GeminiConfig) PrimaryKey() string {
	if len(g.APIKeys) == 0 {
		return ""
	}
	return g.APIKeys[0]
}

// HasKey 는 API 키가 하나 이상 설정되었는지 확인한다.
func (g GeminiConfig) HasKey() bool {
	return g.PrimaryKey() != ""
}

// WeatherConfig 는 OpenWeatherMap 설정이다.
type WeatherConfig struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// GeocodeConfig 는 Open-Meteo 지오코딩 설정이다.
type GeocodeConfig struct {
	BaseURL        string
	ResultLimit    int
	Language       string
	TimeoutSeconds int
}

// LoggingConfig 는 로깅 설정이다.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig 는 HTTP 서버 설정이다.
type HTTPConfig struct {
	Host         string
	Port         int
	HTTP2Enabled bool
	GzipEnabled  bool
}

// CORSConfig 는 브라우저 CORS 설정이다.
type CORSConfig struct {
	AllowOrigins []string
}

// AllowAll 은 모든 origin 허용 여부를 반환한다.
func (c CORSConfig) AllowAll() bool {
	for _, origin := range c.AllowOrigins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return false
}

// GRPCConfig 는 gRPC 헬스 서버 설정이다.
type GRPCConfig struct {
	Enabled bool
	Host    string
	Port    int
}

// TelemetryConfig 는 OpenTelemetry 설정이다.
type TelemetryConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	OTLPInsecure   bool
	SampleRate     float64
}

// Config 는 애플리케이션 전체 설정이다.
type Config struct {
	Gemini    GeminiConfig
	Weather   WeatherConfig
	Geocode   GeocodeConfig
	Logging   LoggingConfig
	HTTP      HTTPConfig
	CORS      CORSConfig
	GRPC      GRPCConfig
	Telemetry TelemetryConfig
}
