package server

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/park285/weather-assistant-go/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 90 * time.Second
	// 번역 포함 LLM 호출이 최대 3회 순차 실행되므로 쓰기 제한은 Gemini 타임아웃의 배수로 둔다.
	llmCallsPerRequest = 3
	writeTimeoutSlack  = 10 * time.Second
)

// NewHTTPServer 는 HTTP 서버를 생성한다.
func NewHTTPServer(cfg *config.Config, router *gin.Engine) *http.Server {
	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(cfg.HTTP.Port)),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		WriteTimeout:      writeTimeout(cfg.Gemini.TimeoutSeconds),
	}

	if cfg.HTTP.HTTP2Enabled {
		server.Handler = h2c.NewHandler(router, &http2.Server{IdleTimeout: idleTimeout})
	}

	return server
}

func writeTimeout(geminiTimeoutSeconds int) time.Duration {
	if geminiTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(geminiTimeoutSeconds)*time.Second*llmCallsPerRequest + writeTimeoutSlack
}
