// Package upstream 는 외부 REST API 호출 공통 처리를 제공한다.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 1 << 20

// Error 는 공급자가 non-2xx 로 응답했을 때 반환된다.
type Error struct {
	Message string
	Status  int
	Body    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: status %d", e.Message, e.Status)
}

// NewHTTPClient 는 트레이싱 transport 를 사용하는 HTTP 클라이언트를 생성한다.
func NewHTTPClient(timeoutSeconds int) *http.Client {
	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	if timeoutSeconds > 0 {
		client.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return client
}

// Get: GET 요청 후 본문을 반환합니다. non-2xx 응답은 *Error 로 반환합니다.
func Get(ctx context.Context, client *http.Client, rawURL string, failMessage string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failMessage, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Message: failMessage,
			Status:  resp.StatusCode,
			Body:    strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}
