package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestProgressBar(t *testing.T) {
	cases := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 5, "█████ 100%"},
		{1, 4, 2, "█░░░░  25%"},
	}
	for _, tc := range cases {
		if got := ProgressBar(tc.done, tc.total, tc.width); got != tc.want {
			t.Fatalf("ProgressBar(%d,%d,%d) = %q; want %q", tc.done, tc.total, tc.width, got, tc.want)
		}
	}
}

func TestPanel_PadsToWidestVisibleLine(t *testing.T) {
	SetTheme("classic")
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	var buf bytes.Buffer
	Panel(&buf, []string{C(fgGreen, "ok"), "longer line"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines; got %q", buf.String())
	}
	want := ansi.StringWidth(lines[0])
	for _, ln := range lines {
		if got := ansi.StringWidth(ln); got != want {
			t.Fatalf("ragged panel: line %q width %d, want %d", ln, got, want)
		}
	}
}

func TestMonoThemeDisablesColor(t *testing.T) {
	SetColorForcing(true, false)
	SetTheme("mono")
	defer func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	}()

	if got := C(fgRed, "x"); got != "x" {
		t.Fatalf("expected plain text under mono; got %q", got)
	}
	var buf bytes.Buffer
	OK(&buf, "saved")
	if buf.String() != symCheck+" saved\n" {
		t.Fatalf("OK = %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate = %q", got)
	}
}
