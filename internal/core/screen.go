// Package core holds the pieces shared by demos and hosts: frame timing
// values, input actions and a colored character buffer. Nothing here knows
// about terminals.
package core

import "strings"

// Cell is one character of the buffer.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a width x height grid of cells stored row-major.
type Screen struct {
	w, h  int
	cells []Cell
}

// NewScreen returns a blank buffer. Negative sizes are treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.reshape(width, height)
	return s
}

func (s *Screen) reshape(width, height int) {
	s.w, s.h = max(width, 0), max(height, 0)
	s.cells = make([]Cell, s.w*s.h)
	s.Clear()
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.w && y < s.h
}

// Resize changes the dimensions. The overlapping top-left region survives.
func (s *Screen) Resize(width, height int) {
	if max(width, 0) == s.w && max(height, 0) == s.h {
		return
	}
	old := *s
	s.reshape(width, height)
	cols := min(old.w, s.w)
	for y := range min(old.h, s.h) {
		copy(s.cells[y*s.w:y*s.w+cols], old.cells[y*old.w:y*old.w+cols])
	}
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Set writes r in the default color. Writes off the grid are dropped.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.w+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space off the grid.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.w+x]
}

func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text left to right from (x, y), clipping at the edges.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text on row y, centered horizontally.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.w-len([]rune(text)))/2, y, text)
}

// DrawHLine draws n gray copies of r starting at (x, y).
func (s *Screen) DrawHLine(x, y, n int, r rune) {
	for i := range max(n, 0) {
		s.SetColored(x+i, y, r, ColorGray)
	}
}

// DrawDisc fills the ellipse centered on (cx, cy) with radii rx and ry.
// Cells are about twice as tall as wide, so rx = 2*ry looks round.
func (s *Screen) DrawDisc(cx, cy, rx, ry int, r rune, c Color) {
	if rx <= 0 || ry <= 0 {
		s.SetColored(cx, cy, r, c)
		return
	}
	for dy := -ry; dy <= ry; dy++ {
		ny := float64(dy) / float64(ry)
		for dx := -rx; dx <= rx; dx++ {
			nx := float64(dx) / float64(rx)
			if nx*nx+ny*ny <= 1 {
				s.SetColored(cx+dx, cy+dy, r, c)
			}
		}
	}
}

// Row returns row y as plain text; rows off the grid are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var b strings.Builder
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// String renders the buffer without colors, rows separated by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
