package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/llm"
	"github.com/park285/weather-assistant-go/internal/metrics"
)

var (
	// ErrMissingAPIKey 는 Gemini API 키가 없을 때 반환된다.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY missing")
	// ErrInvalidModel 는 모델이 비어 있을 때 반환된다.
	ErrInvalidModel = errors.New("invalid model")
)

// MIMETypeText 는 기본 응답 MIME 타입이다.
const MIMETypeText = "text/plain"

// Request 는 Gemini 요청 데이터다.
type Request struct {
	Prompt           string
	Model            string
	Task             llm.Task
	Temperature      float32
	MaxOutputTokens  int
	ResponseMIMEType string
}

// Result 는 generateContent 한 번의 결과다.
// 공급자가 non-2xx 로 응답하면 OK=false, Status 에 상태 코드가 담긴다.
type Result struct {
	OK     bool
	Status int
	Raw    string
	Model  string
	Usage  llm.Usage
	// Message 는 non-2xx 응답의 공급자 오류 메시지다.
	Message string
}

// Client 는 Gemini 호출을 담당한다.
type Client struct {
	cfg       config.GeminiConfig
	metrics   *metrics.Store
	logger    *slog.Logger
	mu        sync.Mutex
	clients   map[string]*genai.Client
	apiKeyIdx int
}

// NewClient 는 Gemini 클라이언트를 생성한다. 키가 없어도 생성은 성공하며 호출 시 ErrMissingAPIKey 를 반환한다.
func NewClient(cfg config.GeminiConfig, metricsStore *metrics.Store, logger *slog.Logger) (*Client, error) {
	if metricsStore == nil {
		return nil, errors.New("metrics store is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:     cfg,
		metrics: metricsStore,
		logger:  logger,
		clients: make(map[string]*genai.Client),
	}, nil
}

// HasKey 는 API 키 설정 여부를 반환한다.
func (c *Client) HasKey() bool {
	return c.cfg.HasKey()
}

// DefaultModel 은 요청에 모델이 없을 때 쓰는 모델이다.
func (c *Client) DefaultModel() string {
	return c.cfg.Model
}

// Generate 는 단일 user 턴으로 generateContent 를 호출한다.
func (c *Client) Generate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	if model == "" {
		return Result{}, ErrInvalidModel
	}

	client, err := c.selectClient(ctx)
	if err != nil {
		return Result{Model: model}, err
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	response, err := client.Models.GenerateContent(ctx, model, contents, c.buildGenerateConfig(req))
	if err != nil {
		if status, message, ok := apiErrorStatus(err); ok {
			c.metrics.RecordUpstreamError(req.Task, time.Since(start))
			c.logger.Warn("gemini_upstream_error",
				"task", req.Task,
				"model", model,
				"status", status,
				"message", message,
			)
			return Result{OK: false, Status: status, Model: model, Message: message}, nil
		}
		if !isTransportError(ctx, err) {
			// HTTP 교환은 끝났지만 본문을 해석하지 못한 경우다. 빈 Raw 로 흡수한다.
			c.metrics.RecordSuccess(req.Task, time.Since(start), llm.Usage{})
			c.logger.Warn("gemini_malformed_response",
				"task", req.Task,
				"model", model,
				"err", err,
			)
			return Result{OK: true, Status: http.StatusOK, Model: model}, nil
		}
		c.metrics.RecordError(req.Task, time.Since(start))
		return Result{Model: model}, fmt.Errorf("generate content: %w", err)
	}

	usage := extractUsage(response)
	c.metrics.RecordSuccess(req.Task, time.Since(start), usage)
	return Result{
		OK:     true,
		Status: http.StatusOK,
		Raw:    strings.Join(extractText(response), ""),
		Model:  model,
		Usage:  usage,
	}, nil
}

func (c *Client) selectClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cfg.APIKeys) == 0 {
		return nil, ErrMissingAPIKey
	}

	key := c.cfg.APIKeys[c.apiKeyIdx%len(c.cfg.APIKeys)]
	c.apiKeyIdx++
	if client, ok := c.clients[key]; ok {
		return client, nil
	}

	httpOptions := genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
	if c.cfg.TimeoutSeconds > 0 {
		httpOptions.Timeout = genai.Ptr(time.Duration(c.cfg.TimeoutSeconds) * time.Second)
	}
	client, err := genai.NewClient(context.WithoutCancel(ctx), &genai.ClientConfig{
		APIKey:      key,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.clients[key] = client
	return client, nil
}

func (c *Client) buildGenerateConfig(req Request) *genai.GenerateContentConfig {
	maxTokens := req.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxOutputTokens
	}
	mimeType := req.ResponseMIMEType
	if mimeType == "" {
		mimeType = MIMETypeText
	}
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		MaxOutputTokens:  int32(maxTokens),
		ResponseMIMEType: mimeType,
	}
}

// apiErrorStatus 는 공급자 HTTP 오류에서 상태 코드를 꺼낸다.
func apiErrorStatus(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code, apiErr.Message, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code != 0 {
		return apiErrPtr.Code, apiErrPtr.Message, true
	}
	return 0, "", false
}

// isTransportError 는 응답을 받지 못한 실패(컨텍스트 취소, 연결/타임아웃 오류)인지 판별한다.
func isTransportError(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func extractText(response *genai.GenerateContentResponse) []string {
	if response == nil || len(response.Candidates) == 0 {
		return nil
	}
	content := response.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil
	}

	texts := make([]string, 0, len(content.Parts))
	for _, part := range content.Parts {
		if part == nil || part.Text == "" || part.Thought {
			continue
		}
		texts = append(texts, part.Text)
	}
	return texts
}

func extractUsage(response *genai.GenerateContentResponse) llm.Usage {
	if response == nil || response.UsageMetadata == nil {
		return llm.Usage{}
	}
	usage := response.UsageMetadata
	return llm.Usage{
		InputTokens:     int(usage.PromptTokenCount),
		OutputTokens:    int(usage.CandidatesTokenCount) + int(usage.ThoughtsTokenCount),
		TotalTokens:     int(usage.TotalTokenCount),
		ReasoningTokens: int(usage.ThoughtsTokenCount),
	}
}
