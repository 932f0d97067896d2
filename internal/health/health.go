package health

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/park285/weather-assistant-go/internal/config"
)

var startTime = time.Now()

const dialTimeout = 2 * time.Second

// Component 는 상태 구성 요소다.
type Component struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail"`
}

// Response 는 상태 응답 본문이다.
type Response struct {
	Status     string               `json:"status"`
	Components map[string]Component `json:"components"`
}

// Collect 는 헬스 상태를 수집한다.
// deepChecks 가 true 이면 날씨/지오코딩 upstream 에 TCP 연결을 시도한다.
func Collect(ctx context.Context, cfg *config.Config, deepChecks bool) Response {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	components := map[string]Component{
		"app":     buildAppStatus(),
		"gemini":  buildGeminiStatus(cfg.Gemini),
		"weather": buildUpstreamStatus(ctx, cfg.Weather.BaseURL, cfg.Weather.APIKey != "", deepChecks),
		"geocode": buildUpstreamStatus(ctx, cfg.Geocode.BaseURL, true, deepChecks),
	}

	overall := "ok"
	for _, component := range components {
		if component.Status != "ok" {
			overall = "degraded"
			break
		}
	}

	return Response{
		Status:     overall,
		Components: components,
	}
}

func buildAppStatus() Component {
	uptimeSeconds := int(time.Since(startTime).Seconds())
	return Component{
		Status: "ok",
		Detail: map[string]any{
			"uptime_seconds": uptimeSeconds,
		},
	}
}

func buildGeminiStatus(cfg config.GeminiConfig) Component {
	apiKeyPresent := cfg.HasKey()
	status := "ok"
	if !apiKeyPresent {
		status = "degraded"
	}

	return Component{
		Status: status,
		Detail: map[string]any{
			"api_key_present": apiKeyPresent,
			"api_key_count":   len(cfg.APIKeys),
			"default_model":   cfg.Model,
			"timeout_seconds": cfg.TimeoutSeconds,
		},
	}
}

func buildUpstreamStatus(ctx context.Context, baseURL string, credentialPresent bool, deepChecks bool) Component {
	reachable := false
	dialErr := ""

	if deepChecks {
		address, err := upstreamAddress(baseURL)
		if err != nil {
			dialErr = err.Error()
		} else {
			checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dialTimeout)
			defer cancel()

			var dialer net.Dialer
			conn, err := dialer.DialContext(checkCtx, "tcp", address)
			if err != nil {
				dialErr = err.Error()
			} else {
				reachable = true
				_ = conn.Close()
			}
		}
	}

	status := "ok"
	if !credentialPresent || (deepChecks && !reachable) {
		status = "degraded"
	}

	detail := map[string]any{
		"base_url":           baseURL,
		"credential_present": credentialPresent,
		"deep_checked":       deepChecks,
	}
	if deepChecks {
		detail["reachable"] = reachable
	}
	if dialErr != "" {
		detail["dial_error"] = dialErr
	}

	return Component{
		Status: status,
		Detail: detail,
	}
}

func upstreamAddress(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse upstream url: %w", err)
	}

	host := parsed.Hostname()
	if host == "" {
		return "", fmt.Errorf("upstream host missing")
	}

	port := parsed.Port()
	if port == "" {
		port = "443"
		if parsed.Scheme == "http" {
			port = "80"
		}
	}

	return net.JoinHostPort(host, port), nil
}
