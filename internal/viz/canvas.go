package viz

import "strings"

// Braille cells pack 2x4 dots per character, so a WxH canvas exposes a
// (W*2)x(H*4) dot grid. Dot bit layout within U+2800:
//
//	1  8
//	2 10
//	4 20
//	40 80
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates. Out-of-range dots are
// ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= brailleBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBase
		}
	}
}

// DrawLine rasterizes a segment with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolygon closes the loop over the given dot-coordinate vertices.
func (c *Canvas) DrawPolygon(pts [][2]int) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		c.DrawLine(pts[i][0], pts[i][1], next[0], next[1])
	}
}

// DrawMarker lights a small filled square centered on (x, y).
func (c *Canvas) DrawMarker(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
