package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Questions", "Level 1 (2/5)", 100)
	for _, want := range []string{AppName, "Questions", "Level 1 (2/5)"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFrame_Toast(t *testing.T) {
	header := RenderHeader("Questions", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Y", Description: "Answer"}}, 80)

	without := RenderFrame(header, "body", "", footer, 80, 24)
	with := RenderFrame(header, "body", "saved", footer, 80, 24)

	if !strings.Contains(with, "saved") {
		t.Error("frame should include the toast")
	}
	if lipgloss.Height(with) != lipgloss.Height(without) {
		t.Errorf("toast changed frame height: %d vs %d", lipgloss.Height(with), lipgloss.Height(without))
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
