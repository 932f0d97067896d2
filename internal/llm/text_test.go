package llm

import (
	"strings"
	"testing"
)

func TestTrimRunes(t *testing.T) {
	if TrimRunes("abcdef", 3) != "abc" {
		t.Fatalf("expected abc")
	}
	if TrimRunes("abc", 5) != "abc" {
		t.Fatalf("expected abc")
	}
	if TrimRunes("abc", 0) != "" {
		t.Fatalf("expected empty")
	}
	if TrimRunes("雨が降っています", 3) != "雨が降" {
		t.Fatalf("expected rune-safe trim")
	}
	long := strings.Repeat("あ", 900)
	if got := TrimRunes(long, 800); len([]rune(got)) != 800 {
		t.Fatalf("expected 800 runes, got %d", len([]rune(got)))
	}
}
