package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/park285/weather-assistant-go/internal/llm"
)

const namespace = "weather_assistant"

type promSet struct {
	registry  *prometheus.Registry
	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	tokens    *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

func newPromSet() *promSet {
	c := &promSet{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "LLM generateContent calls by task and outcome.",
		}, []string{"task", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "LLM call latency by task.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"task"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_total",
			Help:      "Token usage reported by the provider.",
		}, []string{"kind"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Deterministic fallbacks used instead of model output.",
		}, []string{"kind"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.calls,
		c.duration,
		c.tokens,
		c.fallbacks,
	)
	return c
}

func (c *promSet) observeCall(task llm.Task, outcome string, duration time.Duration) {
	c.calls.WithLabelValues(string(task), outcome).Inc()
	c.duration.WithLabelValues(string(task)).Observe(duration.Seconds())
}

func (c *promSet) addTokens(usage llm.Usage) {
	c.tokens.WithLabelValues("input").Add(float64(usage.InputTokens))
	c.tokens.WithLabelValues("output").Add(float64(usage.OutputTokens))
	c.tokens.WithLabelValues("reasoning").Add(float64(usage.ReasoningTokens))
}
