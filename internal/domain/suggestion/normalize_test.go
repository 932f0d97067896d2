package suggestion

import (
	"reflect"
	"testing"

	"golang.org/x/text/language"
)

func TestNormalizeBulletCount(t *testing.T) {
	tests := []struct {
		name    string
		bullets []any
		want    []string
	}{
		{"zero", []any{}, []string{fillerEN, fillerEN, fillerEN}},
		{"one", []any{"a"}, []string{"a", fillerEN, fillerEN}},
		{"two", []any{"a", "b"}, []string{"a", "b", fillerEN}},
		{"three", []any{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"five", []any{"a", "b", "c", "d", "e"}, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(map[string]any{"title": "T", "bullets": tt.bullets}, Travel, WeatherFacts{}, language.English)
			if out.IsFallback() {
				t.Fatalf("parsed input should not be a fallback")
			}
			if !reflect.DeepEqual(out.Value.Bullets, tt.want) {
				t.Fatalf("unexpected bullets: %#v", out.Value.Bullets)
			}
		})
	}
}

func TestNormalizeJapaneseFiller(t *testing.T) {
	out := Normalize(map[string]any{"bullets": []any{"傘を持つ"}}, Travel, WeatherFacts{}, language.Japanese)
	want := []string{"傘を持つ", fillerJA, fillerJA}
	if !reflect.DeepEqual(out.Value.Bullets, want) {
		t.Fatalf("unexpected bullets: %#v", out.Value.Bullets)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	out := Normalize(map[string]any{"bullets": "not an array"}, Music, WeatherFacts{City: "Nagoya"}, language.English)
	if out.Value.Title != "music suggestions (Nagoya)" {
		t.Fatalf("unexpected title: %s", out.Value.Title)
	}
	if out.Value.Summary != "" || out.Value.Reason != "" {
		t.Fatalf("expected empty summary and reason: %+v", out.Value)
	}
	if len(out.Value.Bullets) != BulletCount {
		t.Fatalf("expected %d bullets", BulletCount)
	}
}

func TestNormalizeStringifiesBullets(t *testing.T) {
	out := Normalize(map[string]any{"bullets": []any{1.5, true, nil}}, Fashion, WeatherFacts{}, language.English)
	want := []string{"1.5", "true", "null"}
	if !reflect.DeepEqual(out.Value.Bullets, want) {
		t.Fatalf("unexpected bullets: %#v", out.Value.Bullets)
	}
}

func TestNormalizeNilUsesFallback(t *testing.T) {
	weather := WeatherFacts{City: "Sendai", Temp: ptr(12), Condition: "Rain"}
	out := Normalize(nil, Agriculture, weather, language.English)
	if !out.IsFallback() || out.Reason() != ReasonUnparsed {
		t.Fatalf("expected unparsed fallback, got %+v", out)
	}
	if !reflect.DeepEqual(out.Value, AgricultureFallback(weather)) {
		t.Fatalf("fallback mismatch: %+v", out.Value)
	}
}
