package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/park285/weather-assistant-go/internal/llm"
)

// 호출 결과 라벨
const (
	OutcomeOK       = "ok"
	OutcomeUpstream = "upstream_error"
	OutcomeError    = "error"
)

// Store 는 LLM 호출 통계와 대체값 사용 횟수를 저장한다.
type Store struct {
	totalCalls           int64
	totalErrors          int64
	totalUpstreamErrors  int64
	totalInputTokens     int64
	totalOutputTokens    int64
	totalReasoningTokens int64
	totalDurationMs      int64

	fallbackMu sync.Mutex
	fallbacks  map[string]int64

	prom *promSet
}

// NewStore 는 통계 저장소와 전용 Prometheus 레지스트리를 생성한다.
func NewStore() *Store {
	return &Store{
		fallbacks: make(map[string]int64),
		prom:      newPromSet(),
	}
}

// Registry 는 /metrics 노출용 레지스트리를 반환한다.
func (s *Store) Registry() *prometheus.Registry {
	return s.prom.registry
}

// RecordSuccess 는 2xx 응답을 받은 호출을 기록한다.
func (s *Store) RecordSuccess(task llm.Task, duration time.Duration, usage llm.Usage) {
	atomic.AddInt64(&s.totalCalls, 1)
	atomic.AddInt64(&s.totalInputTokens, int64(usage.InputTokens))
	atomic.AddInt64(&s.totalOutputTokens, int64(usage.OutputTokens))
	atomic.AddInt64(&s.totalReasoningTokens, int64(usage.ReasoningTokens))
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
	s.prom.observeCall(task, OutcomeOK, duration)
	s.prom.addTokens(usage)
}

// RecordUpstreamError 는 공급자가 non-2xx 로 응답한 호출을 기록한다.
func (s *Store) RecordUpstreamError(task llm.Task, duration time.Duration) {
	atomic.AddInt64(&s.totalCalls, 1)
	atomic.AddInt64(&s.totalUpstreamErrors, 1)
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
	s.prom.observeCall(task, OutcomeUpstream, duration)
}

// RecordError 는 전송 실패 등 응답이 없는 호출을 기록한다.
func (s *Store) RecordError(task llm.Task, duration time.Duration) {
	atomic.AddInt64(&s.totalCalls, 1)
	atomic.AddInt64(&s.totalErrors, 1)
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
	s.prom.observeCall(task, OutcomeError, duration)
}

// RecordFallback 은 대체값 사용을 kind 별로 기록한다.
func (s *Store) RecordFallback(kind string) {
	s.fallbackMu.Lock()
	s.fallbacks[kind]++
	s.fallbackMu.Unlock()
	s.prom.fallbacks.WithLabelValues(kind).Inc()
}

// Fallbacks 는 kind 별 대체값 사용 횟수 사본을 반환한다.
func (s *Store) Fallbacks() map[string]int64 {
	s.fallbackMu.Lock()
	defer s.fallbackMu.Unlock()
	out := make(map[string]int64, len(s.fallbacks))
	for kind, count := range s.fallbacks {
		out[kind] = count
	}
	return out
}

// UsageTotals 는 누적 사용량을 반환한다.
func (s *Store) UsageTotals() llm.Usage {
	input := atomic.LoadInt64(&s.totalInputTokens)
	output := atomic.LoadInt64(&s.totalOutputTokens)
	reasoning := atomic.LoadInt64(&s.totalReasoningTokens)
	return llm.Usage{
		InputTokens:     int(input),
		OutputTokens:    int(output),
		TotalTokens:     int(input + output),
		ReasoningTokens: int(reasoning),
	}
}

// Snapshot 는 통계 스냅샷을 반환한다.
func (s *Store) Snapshot() map[string]float64 {
	totalCalls := atomic.LoadInt64(&s.totalCalls)
	totalErrors := atomic.LoadInt64(&s.totalErrors)
	upstreamErrors := atomic.LoadInt64(&s.totalUpstreamErrors)
	input := atomic.LoadInt64(&s.totalInputTokens)
	output := atomic.LoadInt64(&s.totalOutputTokens)
	reasoning := atomic.LoadInt64(&s.totalReasoningTokens)
	durationMs := atomic.LoadInt64(&s.totalDurationMs)

	avgDuration := 0.0
	if totalCalls > 0 {
		avgDuration = float64(durationMs) / float64(totalCalls)
	}

	snapshot := map[string]float64{
		"total_calls":            float64(totalCalls),
		"total_errors":           float64(totalErrors),
		"total_upstream_errors":  float64(upstreamErrors),
		"total_input_tokens":     float64(input),
		"total_output_tokens":    float64(output),
		"total_reasoning_tokens": float64(reasoning),
		"total_tokens":           float64(input + output),
		"total_duration_ms":      float64(durationMs),
		"avg_duration_ms":        avgDuration,
	}

	fallbacks := s.Fallbacks()
	kinds := make([]string, 0, len(fallbacks))
	for kind := range fallbacks {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	var totalFallbacks int64
	for _, kind := range kinds {
		snapshot["fallbacks_"+kind] = float64(fallbacks[kind])
		totalFallbacks += fallbacks[kind]
	}
	snapshot["total_fallbacks"] = float64(totalFallbacks)
	return snapshot
}
