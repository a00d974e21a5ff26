// Package parser reconstructs wikitable grids and infers packet schemas
// from them.
package parser

import "strings"

// Cell is one wikitable cell together with its resolved grid geometry.
// A cell occupies the rectangle [X, X+Colspan) x [Y, Y+Rowspan); after
// reconstruction no two cells of a table claim the same position.
type Cell struct {
	// Content is the cell text, continuation lines joined with newlines.
	Content string
	// IsHeader reports whether the cell came from a header line.
	IsHeader bool
	// X is the zero-based column of the cell's origin.
	X int
	// Y is the zero-based row of the cell's origin.
	Y int
	// Rowspan is the number of rows the cell occupies (>= 1).
	Rowspan int
	// Colspan is the number of columns the cell occupies (>= 1).
	Colspan int
}

func (c Cell) covers(x, y int) bool {
	return c.X <= x && x < c.X+c.Colspan && c.Y <= y && y < c.Y+c.Rowspan
}

// Grid is the reconstructed row-major layout of one wikitable. It is built
// once by ParseTable and read-only afterwards.
type Grid struct {
	rows [][]Cell
}

// Height returns the number of flushed rows.
func (g *Grid) Height() int {
	return len(g.rows)
}

// Width returns the table width: the maximum X+Colspan over all cells.
func (g *Grid) Width() int {
	w := 0
	for _, row := range g.rows {
		for _, c := range row {
			if c.X+c.Colspan > w {
				w = c.X + c.Colspan
			}
		}
	}
	return w
}

// View returns a view spanning the whole grid.
func (g *Grid) View() View {
	return View{grid: g, w: -1, h: -1}
}

// View is a rectangular, coordinate-rebased window over an immutable Grid.
// Crops compose by offset arithmetic over the shared cell arena; cells are
// only copied (rebased) when a caller asks for a row. A view never mutates
// its parent.
type View struct {
	grid   *Grid
	x0, y0 int
	// w and h are the window extents; negative means "to the grid's edge".
	w, h int
}

// Crop returns a sub-view with its origin translated by (x, y). Negative
// width or height extends to the view's edge. Cropping a crop is equivalent
// to one crop with summed offsets.
func (v View) Crop(x, y, width, height int) View {
	remW := v.w
	if remW >= 0 {
		remW -= x
		if remW < 0 {
			remW = 0
		}
	}
	remH := v.h
	if remH >= 0 {
		remH -= y
		if remH < 0 {
			remH = 0
		}
	}
	if width < 0 || (remW >= 0 && width > remW) {
		width = remW
	}
	if height < 0 || (remH >= 0 && height > remH) {
		height = remH
	}
	return View{grid: v.grid, x0: v.x0 + x, y0: v.y0 + y, w: width, h: height}
}

// spanRows returns the number of grid rows the window covers.
func (v View) spanRows() int {
	if v.grid == nil {
		return 0
	}
	n := v.grid.Height() - v.y0
	if n < 0 {
		n = 0
	}
	if v.h >= 0 && v.h < n {
		n = v.h
	}
	return n
}

func (v View) retains(c Cell) bool {
	if c.X < v.x0 || c.Y < v.y0 {
		return false
	}
	if v.w >= 0 && c.X >= v.x0+v.w {
		return false
	}
	if v.h >= 0 && c.Y >= v.y0+v.h {
		return false
	}
	return true
}

// Row returns the rebased cells originating in window row y. Rows fully
// covered by spans from earlier rows come back empty.
func (v View) Row(y int) []Cell {
	if y < 0 || y >= v.spanRows() {
		return nil
	}
	var out []Cell
	for _, c := range v.grid.rows[v.y0+y] {
		if v.retains(c) {
			c.X -= v.x0
			c.Y -= v.y0
			out = append(out, c)
		}
	}
	return out
}

// Height returns the number of non-empty rows in the view.
func (v View) Height() int {
	n := 0
	for y := 0; y < v.spanRows(); y++ {
		if len(v.Row(y)) > 0 {
			n++
		}
	}
	return n
}

// Width returns the maximum rebased X+Colspan over retained cells.
func (v View) Width() int {
	w := 0
	for y := 0; y < v.spanRows(); y++ {
		for _, c := range v.Row(y) {
			if c.X+c.Colspan > w {
				w = c.X + c.Colspan
			}
		}
	}
	return w
}

// CellAt returns the cell whose occupied rectangle covers (x, y). Every
// position inside a Rowspan x Colspan rectangle resolves to the same cell.
func (v View) CellAt(x, y int) (Cell, bool) {
	for r := 0; r <= y && r < v.spanRows(); r++ {
		for _, c := range v.Row(r) {
			if c.covers(x, y) {
				return c, true
			}
		}
	}
	return Cell{}, false
}

// SearchHeaders returns the header cells of row 0 whose content satisfies
// the predicate. Headers only occur in row 0 of the dialect's tables.
func (v View) SearchHeaders(predicate func(string) bool) []Cell {
	var out []Cell
	for _, c := range v.Row(0) {
		if c.IsHeader && predicate(c.Content) {
			out = append(out, c)
		}
	}
	return out
}

// soleCell returns the view's only cell, if the view contains exactly one.
func (v View) soleCell() (Cell, bool) {
	var found Cell
	n := 0
	for y := 0; y < v.spanRows(); y++ {
		for _, c := range v.Row(y) {
			found = c
			n++
			if n > 1 {
				return Cell{}, false
			}
		}
	}
	return found, n == 1
}

// Shape renders the grid's span geometry with box-drawing characters, one
// cell outline per spanning rectangle. Intended for debugging table layout.
func (g *Grid) Shape() string {
	const colWidth, rowHeight = 5, 2

	// Size the canvas from span extents, not flushed rows: a truncated
	// table can carry rowspans past the last row it actually has.
	cols, rows := g.Width(), g.Height()
	for _, row := range g.rows {
		for _, c := range row {
			if c.Y+c.Rowspan > rows {
				rows = c.Y + c.Rowspan
			}
		}
	}
	w := cols*colWidth + 1
	h := rows*rowHeight + 1
	if w <= 1 || h <= 1 {
		return ""
	}
	canvas := make([][]rune, h)
	for i := range canvas {
		canvas[i] = make([]rune, w)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, row := range g.rows {
		for _, c := range row {
			ox, oy := c.X*colWidth, c.Y*rowHeight
			mx, my := ox+c.Colspan*colWidth, oy+c.Rowspan*rowHeight
			for x := ox + 1; x < mx; x++ {
				canvas[oy][x] = '─'
				canvas[my][x] = '─'
			}
			for y := oy + 1; y < my; y++ {
				canvas[y][ox] = '│'
				canvas[y][mx] = '│'
			}
		}
	}

	lines := make([]string, h)
	for i, r := range canvas {
		lines[i] = strings.TrimRight(string(r), " ")
	}
	return strings.Join(lines, "\n")
}
