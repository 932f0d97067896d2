package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/park285/weather-assistant-go/internal/config"
	chatdomain "github.com/park285/weather-assistant-go/internal/domain/chat"
	"github.com/park285/weather-assistant-go/internal/domain/suggestion"
	"github.com/park285/weather-assistant-go/internal/gemini"
	"github.com/park285/weather-assistant-go/internal/llm"
	"github.com/park285/weather-assistant-go/internal/metrics"
	"github.com/park285/weather-assistant-go/internal/translate"
)

type scriptedGenerator struct {
	results []gemini.Result
	errs    []error
	calls   []gemini.Request
}

func (g *scriptedGenerator) Generate(_ context.Context, req gemini.Request) (gemini.Result, error) {
	idx := len(g.calls)
	g.calls = append(g.calls, req)
	if idx < len(g.errs) && g.errs[idx] != nil {
		return gemini.Result{}, g.errs[idx]
	}
	if idx < len(g.results) {
		return g.results[idx], nil
	}
	return gemini.Result{OK: true, Status: 200}, nil
}

func ok(raw string) gemini.Result {
	return gemini.Result{OK: true, Status: 200, Raw: raw}
}

func ptr(v float64) *float64 { return &v }

func newTestService(t *testing.T, gen gemini.Generator) *Service {
	t.Helper()
	bundle, err := suggestion.Prompts()
	if err != nil {
		t.Fatalf("load prompts: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	translator, err := translate.New(gen, bundle, nil, logger)
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	service, err := New(gen, translator, bundle, logger)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func TestReplyEnglish(t *testing.T) {
	gen := &scriptedGenerator{results: []gemini.Result{
		ok("  Take an umbrella.\n"),
		ok("傘を持って行ってください。"),
	}}
	service := newTestService(t, gen)

	result, err := service.Reply(context.Background(), Request{
		Message: "Do I need an umbrella?",
		Context: Context{Category: "travel", Weather: suggestion.WeatherFacts{City: "Tokyo", Temp: ptr(18), Condition: "rain", Wind: ptr(3.5)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ReplyEN != "Take an umbrella." || result.ReplyJP != "傘を持って行ってください。" {
		t.Fatalf("unexpected replies: %+v", result)
	}
	if result.Raw != "  Take an umbrella.\n" {
		t.Fatalf("raw should be untrimmed: %q", result.Raw)
	}
	if result.Meta.DetectedUserLanguage != "en" || result.Meta.MessageTranslated || result.Meta.GeminiStatus != 200 {
		t.Fatalf("unexpected meta: %+v", result.Meta)
	}

	chatPrompt := gen.calls[0].Prompt
	for _, want := range []string{
		"specialized in travel",
		"Weather: Tokyo, 18°C, rain, wind 3.5 m/s.",
		"User: Do I need an umbrella?",
		"Do not return JSON; return plain text.",
	} {
		if !strings.Contains(chatPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, chatPrompt)
		}
	}
	if gen.calls[0].MaxOutputTokens != MaxOutputTokens || gen.calls[0].Task != llm.TaskChat {
		t.Fatalf("unexpected chat request: %+v", gen.calls[0])
	}
	if !strings.Contains(gen.calls[1].Prompt, "Take an umbrella.") {
		t.Fatalf("translation prompt should carry reply")
	}
}

func TestReplyTrimsHistoryToLastEight(t *testing.T) {
	gen := &scriptedGenerator{results: []gemini.Result{ok("ok"), ok("はい")}}
	service := newTestService(t, gen)

	history := make([]chatdomain.Message, 0, 12)
	for i := 1; i <= 12; i++ {
		role := chatdomain.RoleUser
		if i%2 == 0 {
			role = chatdomain.RoleAssistant
		}
		history = append(history, chatdomain.Message{Role: role, TextEN: fmt.Sprintf("msg-%02d", i), TextJP: "日本語"})
	}

	if _, err := service.Reply(context.Background(), Request{History: history, Message: "next"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chatPrompt := gen.calls[0].Prompt
	for i := 1; i <= 4; i++ {
		if strings.Contains(chatPrompt, fmt.Sprintf("msg-%02d", i)) {
			t.Fatalf("msg-%02d should be trimmed", i)
		}
	}
	for i := 5; i <= 12; i++ {
		if !strings.Contains(chatPrompt, fmt.Sprintf("msg-%02d", i)) {
			t.Fatalf("msg-%02d should be present", i)
		}
	}
	if strings.Contains(chatPrompt, "日本語") {
		t.Fatalf("japanese history text should never reach the prompt")
	}
	if !strings.Contains(chatPrompt, "specialized in general") || !strings.Contains(chatPrompt, "Weather: unknown, N/A°C, N/A, wind N/A m/s.") {
		t.Fatalf("unexpected defaults in prompt:\n%s", chatPrompt)
	}
}

func TestReplyJapaneseMessage(t *testing.T) {
	gen := &scriptedGenerator{results: []gemini.Result{
		ok("Is it cold today?"),
		ok("Yes, wear a coat."),
		ok("はい、コートを着てください。"),
	}}
	service := newTestService(t, gen)

	result, err := service.Reply(context.Background(), Request{Message: "今日は寒いですか"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MessageEN != "Is it cold today?" || !result.Meta.MessageTranslated || result.Meta.DetectedUserLanguage != "ja" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.Contains(gen.calls[1].Prompt, "User: Is it cold today?") {
		t.Fatalf("chat prompt should use translated message")
	}
}

func TestReplyJapaneseTranslationFailureIsEmpty(t *testing.T) {
	gen := &scriptedGenerator{
		results: []gemini.Result{ok("Sure.")},
		errs:    []error{nil, errors.New("connection reset")},
	}
	service := newTestService(t, gen)

	result, err := service.Reply(context.Background(), Request{Message: "hello"})
	if err != nil {
		t.Fatalf("translation failure should not fail the request: %v", err)
	}
	if result.ReplyEN != "Sure." || result.ReplyJP != "" {
		t.Fatalf("unexpected replies: %+v", result)
	}
}

func TestReplyUpstreamStatusReported(t *testing.T) {
	gen := &scriptedGenerator{results: []gemini.Result{{OK: false, Status: 429}}}
	service := newTestService(t, gen)

	result, err := service.Reply(context.Background(), Request{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Meta.GeminiStatus != 429 || result.ReplyEN != "" || result.ReplyJP != "" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("empty reply should skip translation, got %d calls", len(gen.calls))
	}
}

func TestReplyMissingKey(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{gemini.ErrMissingAPIKey}}
	service := newTestService(t, gen)

	if _, err := service.Reply(context.Background(), Request{Message: "hello"}); !errors.Is(err, gemini.ErrMissingAPIKey) {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestReplyMalformedUpstreamBodyIsEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html>gateway oops</html>`)
	}))
	defer server.Close()

	client, err := gemini.NewClient(config.GeminiConfig{
		APIKeys:         []string{"test-key"},
		Model:           config.DefaultModel,
		BaseURL:         server.URL,
		MaxOutputTokens: 400,
		TimeoutSeconds:  5,
	}, metrics.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	service := newTestService(t, client)

	result, err := service.Reply(context.Background(), Request{Message: "hello"})
	if err != nil {
		t.Fatalf("undecodable upstream body should not fail the chat: %v", err)
	}
	if result.Meta.GeminiStatus != http.StatusOK || result.ReplyEN != "" || result.ReplyJP != "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestReplyLogsNonEnglishHistory(t *testing.T) {
	var logs strings.Builder
	gen := &scriptedGenerator{results: []gemini.Result{ok("Take an umbrella."), ok("傘を持って行きましょう。")}}
	service := newTestService(t, gen)
	service.logger = slog.New(slog.NewTextHandler(&logs, nil))

	_, err := service.Reply(context.Background(), Request{
		History: []chatdomain.Message{{Role: chatdomain.RoleUser, Text: "雨が降りそう"}},
		Message: "should I go out?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(logs.String(), "chat_history_non_english") || !strings.Contains(logs.String(), "turns=1") {
		t.Fatalf("expected non-English history warning, got %q", logs.String())
	}
}
