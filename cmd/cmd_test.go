package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/unseenbook/internal/prefs"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "missing.yml")
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	t.Cleanup(func() {
		bookLang = ""
		chapterHTML = false
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestPartsCommand(t *testing.T) {
	out := run(t, "parts")
	if !strings.Contains(out, "Part 1: The Core Mechanics of Flutter") {
		t.Errorf("missing part 1 heading:\n%s", out)
	}
	if !strings.Contains(out, "  20  ") {
		t.Errorf("missing chapter 20:\n%s", out)
	}
}

func TestChapterCommandArabic(t *testing.T) {
	out := run(t, "chapter", "1", "--lang", "ar")
	if !strings.Contains(out, "ما وراء الـ Widget: فهم الأشجار الثلاث لـ Flutter") {
		t.Errorf("missing Arabic title:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	if out != "unseenbook dev\n" {
		t.Errorf("got %q", out)
	}
}

func TestPrefKey(t *testing.T) {
	tests := map[string]string{
		"language":     prefs.KeyLanguage,
		"Lang":         prefs.KeyLanguage,
		"theme":        prefs.KeyTheme,
		prefs.KeyTheme: prefs.KeyTheme,
		"fontSize":     "fontSize",
	}
	for in, want := range tests {
		if got := prefKey(in); got != want {
			t.Errorf("prefKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContentLabel(t *testing.T) {
	if contentLabel("") != "embedded" || contentLabel("book") != "book" {
		t.Error("unexpected content label")
	}
}
