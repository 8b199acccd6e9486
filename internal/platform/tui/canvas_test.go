package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gameland/internal/core"
)

func TestCanvasHalfBlocks(t *testing.T) {
	// 4x4 logical area on 4x2 cells: one logical unit per pixel
	c := NewCanvas(4, 4, 4, 2)
	bg := core.ColorBlack
	red := core.ColorRed

	c.Clear(bg)
	c.FillRect(core.NewRect(0, 0, 1, 1), red) // top pixel of cell (0,0)
	c.FillRect(core.NewRect(1, 1, 1, 1), red) // bottom pixel of cell (1,0)
	c.FillRect(core.NewRect(2, 0, 1, 2), red) // both pixels of cell (2,0)
	c.Present()

	s := c.Screen()
	tests := []struct {
		x, y     int
		expected core.Cell
	}{
		{0, 0, core.Cell{Rune: halfBlock, FG: red, BG: bg}},
		{1, 0, core.Cell{Rune: halfBlock, FG: bg, BG: red}},
		{2, 0, core.Cell{Rune: ' ', FG: red, BG: red}},
		{3, 0, core.Cell{Rune: ' ', FG: bg, BG: bg}},
		{0, 1, core.Cell{Rune: ' ', FG: bg, BG: bg}},
	}
	for _, tt := range tests {
		if got := s.GetCell(tt.x, tt.y); got != tt.expected {
			t.Errorf("GetCell(%d, %d) = %+v, expected %+v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestCanvasScalesLogicalArea(t *testing.T) {
	// 800x600 logical onto 80x30 cells = 80x60 pixels, 10 units per pixel
	c := NewCanvas(800, 600, 80, 30)
	c.Clear(core.ColorBlack)
	c.FillRect(core.NewRect(395, 295, 10, 10), core.ColorWhite)
	c.Present()

	s := c.Screen()
	// x 395..405 touches pixels 39 and 40; y 295..305 touches pixel rows 29 and 30
	for _, x := range []int{39, 40} {
		if got := s.GetCell(x, 14); got.BG != core.ColorWhite || got.FG != core.ColorBlack {
			t.Errorf("GetCell(%d, 14) = %+v, expected white bottom half", x, got)
		}
		if got := s.GetCell(x, 15); got.FG != core.ColorWhite || got.BG != core.ColorBlack {
			t.Errorf("GetCell(%d, 15) = %+v, expected white top half", x, got)
		}
	}
	if got := s.GetCell(41, 15); got.FG != core.ColorBlack {
		t.Errorf("GetCell(41, 15) = %+v, expected background", got)
	}
}

func TestCanvasClipsAndIgnoresEmpty(t *testing.T) {
	c := NewCanvas(10, 10, 5, 5)
	c.Clear(core.ColorBlack)
	c.FillRect(core.NewRect(-100, -100, 1000, 1000), core.ColorBlue)
	c.FillRect(core.NewRect(2, 2, 0, 5), core.ColorRed)
	c.Present()

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := c.Screen().GetCell(x, y); got.FG != core.ColorBlue || got.BG != core.ColorBlue {
				t.Fatalf("GetCell(%d, %d) = %+v, expected all blue", x, y, got)
			}
		}
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(800, 600, 10, 10)
	c.Resize(20, 5)

	if cols, rows := c.Size(); cols != 20 || rows != 5 {
		t.Errorf("Size() = %dx%d, expected 20x5", cols, rows)
	}

	c.Resize(0, -3)
	c.Clear(core.ColorRed)
	c.FillRect(core.NewRect(0, 0, 800, 600), core.ColorRed)
	c.Present()
	if cols, rows := c.Size(); cols != 0 || rows != 0 {
		t.Errorf("Size() = %dx%d, expected 0x0", cols, rows)
	}
}

func TestRendererKeepsCells(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.Clear(core.ColorBlack)
	s.Set(1, 0, core.Cell{Rune: halfBlock, FG: core.ColorRed, BG: core.ColorBlack})
	s.Set(0, 1, core.Cell{Rune: 'o', FG: core.ColorWhite, BG: core.ColorBlack})
	s.Set(1, 1, core.Cell{Rune: 'k', FG: core.ColorWhite, BG: core.ColorBlack})

	out := NewRenderer(nil).Render(s)

	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("Render() has %d line breaks, expected 1", got)
	}
	for _, want := range []string{string(halfBlock), "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() = %q, expected it to contain %q", out, want)
		}
	}
}

func TestRendererCachesStyles(t *testing.T) {
	r := NewRenderer(nil)
	r.Style(core.ColorRed, core.ColorBlack)
	r.Style(core.ColorRed, core.ColorBlack)
	r.Style(core.ColorBlue, core.ColorBlack)

	if len(r.styles) != 2 {
		t.Errorf("cached styles = %d, expected 2", len(r.styles))
	}
}
