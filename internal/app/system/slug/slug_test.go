package slug

import (
	"errors"
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Test News", "test-news"},
		{"accents", "Café Déjà Vu", "cafe-deja-vu"},
		{"vietnamese", "Nhà máy Sài Gòn", "nha-may-sai-gon"},
		{"vietnamese d", "Quần đùi", "quan-dui"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"multiple spaces", "a   b", "a-b"},
		{"underscores", "a_b_c", "a-b-c"},
		{"leading trailing", "  --hello--  ", "hello"},
		{"numbers", "Top 10 Products 2026", "top-10-products-2026"},
		{"symbols only", "???", ""},
		{"empty", "", ""},
		{"kanji only", "日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMakeJapanese(t *testing.T) {
	got := MakeJapanese("テスト")
	if got != "tesuto" {
		t.Errorf("MakeJapanese(テスト) = %q, want %q", got, "tesuto")
	}

	// Mixed latin passes through the folding path unchanged.
	if got := MakeJapanese("Saigon News"); got != "saigon-news" {
		t.Errorf("MakeJapanese(Saigon News) = %q, want %q", got, "saigon-news")
	}
}

func TestAssign_Unique(t *testing.T) {
	existing := map[string]bool{}
	taken := func(s string) (bool, error) { return existing[s], nil }

	first, err := Assign("news", "Test News", taken)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if first != "test-news" {
		t.Fatalf("first slug = %q, want %q", first, "test-news")
	}
	existing[first] = true

	second, _ := Assign("news", "Test News", taken)
	if second != "test-news-2" {
		t.Fatalf("second slug = %q, want %q", second, "test-news-2")
	}
	existing[second] = true

	third, _ := Assign("news", "Test News", taken)
	if third != "test-news-3" {
		t.Fatalf("third slug = %q, want %q", third, "test-news-3")
	}
}

func TestAssign_TimestampFallback(t *testing.T) {
	got, err := Assign("news", "???", nil)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if !strings.HasPrefix(got, "news-") {
		t.Fatalf("fallback slug = %q, want news-<millis>", got)
	}
	if len(got) <= len("news-") {
		t.Fatalf("fallback slug %q has no timestamp component", got)
	}
}

func TestAssign_FallbackStillProbed(t *testing.T) {
	// Even the timestamp fallback goes through the uniqueness probe.
	var first string
	taken := func(s string) (bool, error) { return s == first, nil }

	first, _ = Assign("job", "???", func(string) (bool, error) { return false, nil })
	second, _ := Assign("job", "???", taken)
	if second == first {
		t.Fatalf("fallback slugs collided: %q", first)
	}
}

func TestAssign_LookupFailureAborts(t *testing.T) {
	// A broken lookup (DB outage, cancelled context) must surface as an
	// error after a bounded number of probes, not keep the probe spinning.
	lookupErr := errors.New("count failed")
	calls := 0
	taken := func(string) (bool, error) {
		calls++
		return false, lookupErr
	}

	got, err := Assign("news", "Test News", taken)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("Assign() error = %v, want %v", err, lookupErr)
	}
	if got != "" {
		t.Errorf("Assign() slug = %q, want empty on error", got)
	}
	if calls != 1 {
		t.Errorf("lookup calls = %d, want 1", calls)
	}
}

func TestAssign_LookupFailureMidProbe(t *testing.T) {
	// The base reads as taken, then the suffix probe starts failing.
	lookupErr := errors.New("count failed")
	calls := 0
	taken := func(string) (bool, error) {
		calls++
		if calls == 1 {
			return true, nil
		}
		return false, lookupErr
	}

	if _, err := Assign("news", "Test News", taken); !errors.Is(err, lookupErr) {
		t.Fatalf("Assign() error = %v, want %v", err, lookupErr)
	}
	if calls != 2 {
		t.Errorf("lookup calls = %d, want 2", calls)
	}
}
