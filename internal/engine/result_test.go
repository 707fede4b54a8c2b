package engine

import (
	"strings"
	"testing"

	"github.com/stevehiehn/chatrun/internal/action"
)

func TestLogStringByKind(t *testing.T) {
	if got := (Log{Kind: LogEmpty}).String(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := (Log{Kind: LogRefused}).String(); got != RefusalMessage {
		t.Errorf("expected refusal message, got %q", got)
	}
	if got := (Log{Kind: LogSkipped}).String(); got != SkippedMessage {
		t.Errorf("expected skipped message, got %q", got)
	}
}

func TestOutcomeStringMarksEmptyStreams(t *testing.T) {
	o := Outcome{Step: 2, Kind: action.KindCommand, Command: "true", Success: true}
	want := "[2] $ true\nexit code: 0\nstdout:\n(empty)\nstderr:\n(empty)\n"
	if got := o.String(); got != want {
		t.Errorf("unexpected outcome:\n%q\nwant:\n%q", got, want)
	}
}

func TestOutcomeStringFileFailure(t *testing.T) {
	o := Outcome{Step: 1, Kind: action.KindFileWrite, Path: "a/b", Error: "no such file or directory"}
	if got := o.String(); got != "[1] write file a/b: failed: no such file or directory\n" {
		t.Errorf("unexpected outcome %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 0); got != "short" {
		t.Errorf("zero max must not truncate, got %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("unexpected truncation %q", got)
	}
	got := Truncate("abcdefghij", 4)
	if !strings.HasPrefix(got, "abcd\n") || !strings.Contains(got, "[truncated 6 bytes]") {
		t.Errorf("unexpected truncation %q", got)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes; cutting at 2 would split it.
	got := Truncate("aé-tail", 2)
	if !strings.HasPrefix(got, "a\n") {
		t.Errorf("expected cut before the multibyte rune, got %q", got)
	}
}
