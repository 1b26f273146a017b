package ui

import (
	"strings"
	"testing"
)

func TestRender_NoColor(t *testing.T) {
	SetColor(false)
	t.Cleanup(func() { SetColor(false) })

	tests := []struct {
		name   string
		render func(string) string
	}{
		{"pass", RenderPass},
		{"warn", RenderWarn},
		{"fail", RenderFail},
		{"accent", RenderAccent},
		{"muted", RenderMuted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.render("✓ done"); got != "✓ done" {
				t.Errorf("got %q, want plain text", got)
			}
		})
	}
}

func TestRender_Color(t *testing.T) {
	SetColor(true)
	t.Cleanup(func() { SetColor(false) })

	got := RenderFail("x")
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "x") {
		t.Errorf("RenderFail = %q, want ANSI-styled text", got)
	}
}
