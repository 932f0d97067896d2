package shared

import (
	"testing"
)

func TestDecode(t *testing.T) {
	type Facts struct {
		City      string   `json:"city"`
		Temp      *float64 `json:"temp"`
		Condition string   `json:"condition"`
		Wind      *float64 `json:"wind"`
	}

	tests := []struct {
		name     string
		input    map[string]any
		wantTemp *float64
		wantWind *float64
		wantErr  bool
	}{
		{
			name:     "numbers",
			input:    map[string]any{"city": "Tokyo", "temp": 18.5, "wind": 3.0},
			wantTemp: ptr(18.5),
			wantWind: ptr(3),
		},
		{
			name:     "weakly typed string number",
			input:    map[string]any{"temp": "18"},
			wantTemp: ptr(18),
		},
		{
			name:  "null temp stays unknown",
			input: map[string]any{"temp": nil},
		},
		{
			name:  "empty string stays unknown",
			input: map[string]any{"temp": "", "wind": ""},
		},
		{
			name:    "not a number",
			input:   map[string]any{"temp": "warm"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Facts
			err := Decode(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !sameFloat(got.Temp, tt.wantTemp) {
				t.Fatalf("Temp = %v, want %v", got.Temp, tt.wantTemp)
			}
			if !sameFloat(got.Wind, tt.wantWind) {
				t.Fatalf("Wind = %v, want %v", got.Wind, tt.wantWind)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
