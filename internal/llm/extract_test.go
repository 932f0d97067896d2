package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{name: "plain", input: `{"a":1}`, want: map[string]any{"a": float64(1)}},
		{name: "noise", input: `noise {"a":1} trail`, want: map[string]any{"a": float64(1)}},
		{name: "code fence", input: "```json\n{\"title\":\"x\"}\n```", want: map[string]any{"title": "x"}},
		{name: "not json", input: "not json"},
		{name: "malformed inner", input: `{"a":}`},
		{name: "reversed braces", input: `} nothing {`},
		{name: "empty", input: ""},
		{name: "trailing comma", input: `{"a":1,}`},
		{name: "two objects", input: `{"a":1} and {"b":2}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractJSON(tc.input)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %+v, got nil", tc.want)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("unexpected keys: %+v", got)
			}
			for key, value := range tc.want {
				if got[key] != value {
					t.Fatalf("key %s = %v, want %v", key, got[key], value)
				}
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	ok := Ok("value")
	if ok.IsFallback() || ok.Reason() != "" || ok.Value != "value" {
		t.Fatalf("unexpected ok outcome: %+v", ok)
	}

	fb := Fallback(3, "empty reply")
	if !fb.IsFallback() || fb.Reason() != "empty reply" || fb.Value != 3 {
		t.Fatalf("unexpected fallback outcome: %+v", fb)
	}
}
