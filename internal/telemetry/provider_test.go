package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/park285/weather-assistant-go/internal/config"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.IsEnabled() {
		t.Fatalf("expected disabled provider")
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

func TestRootSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased"},
	}
	for _, tt := range tests {
		if got := rootSampler(tt.rate).Description(); !strings.HasPrefix(got, tt.want) {
			t.Fatalf("rootSampler(%v) = %s, want prefix %s", tt.rate, got, tt.want)
		}
	}
}
