package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Point is a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Half-block characters used to pack two sub-pixels into one cell.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a monochrome pixel buffer with 2x vertical resolution using
// half-block characters. Drawing happens in logical coordinates (the game
// canvas) and is scaled to the terminal cells the canvas occupies.
type Canvas struct {
	cols      int    // Terminal columns covered by the canvas
	rows      int    // Terminal rows covered by the canvas
	subRows   int    // rows * 2
	pixels    []bool // [y * cols + x]
	logicalW  float64
	logicalH  float64
	scaleX    float64 // cols / logicalW
	scaleY    float64 // subRows / logicalH
	offsetCol int     // Columns to skip before the canvas starts
	offsetRow int     // Rows to skip before the canvas starts

	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewCanvas creates a canvas for a logicalW x logicalH scene, fitted into a
// terminal of termW x termH cells.
func NewCanvas(logicalW, logicalH float64, termW, termH int) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH}
	c.Fit(termW, termH)
	return c
}

// Fit sizes the canvas to the terminal with FitCells. Returns whether the
// cell geometry changed.
func (c *Canvas) Fit(termW, termH int) bool {
	cols, rows, offCol, offRow := FitCells(c.logicalW, c.logicalH, termW, termH)
	changed := cols != c.cols || rows != c.rows || offCol != c.offsetCol || offRow != c.offsetRow

	if cols != c.cols || rows != c.rows {
		c.pixels = make([]bool, rows*2*cols)
	}
	c.cols, c.rows, c.subRows = cols, rows, rows*2
	c.offsetCol, c.offsetRow = offCol, offRow
	c.scaleX = float64(cols) / c.logicalW
	c.scaleY = float64(c.subRows) / c.logicalH
	return changed
}

// FitCells returns the largest block of terminal cells that shows a
// logicalW x logicalH scene without distortion, and the offsets that centre
// it. A cell is taken to be twice as tall as it is wide.
func FitCells(logicalW, logicalH float64, termW, termH int) (cols, rows, offCol, offRow int) {
	aspect := logicalW / logicalH
	rows = max(termH, 1)
	cols = int(math.Round(aspect * float64(rows*2)))
	if cols > termW {
		cols = max(termW, 1)
		rows = max(int(math.Round(float64(cols)/aspect/2)), 1)
	}
	return cols, rows, max((termW-cols)/2, 0), max((termH-rows)/2, 0)
}

// Offset returns the 0-based terminal column and row where the canvas starts.
func (c *Canvas) Offset() (col, row int) {
	return c.offsetCol, c.offsetRow
}

// Size returns the terminal columns and rows the canvas covers.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a sub-pixel in canvas coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		c.pixels[y*c.cols+x] = true
	}
}

// At reports whether the sub-pixel covering logical point (x, y) is set.
func (c *Canvas) At(x, y float64) bool {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	if px < 0 || px >= c.cols || py < 0 || py >= c.subRows {
		return false
	}
	return c.pixels[py*c.cols+px]
}

// FillRect sets every sub-pixel covered by the logical rectangle.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(int(math.Ceil((x+w)*c.scaleX)), x0+1)
	y1 := max(int(math.Ceil((y+h)*c.scaleY)), y0+1)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py)
		}
	}
}

// StrokeRect draws the outline of the logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.DrawPolygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, false)
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a closed polygon, filling the interior when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1, p2 := scaled[i], scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the set cells as positioned half-block characters.
// Empty cells are skipped; the caller clears the screen first.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.rows * 12)

	for row := 0; row < c.rows; row++ {
		top := c.pixels[row*2*c.cols:]
		bottom := c.pixels[(row*2+1)*c.cols:]
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch {
			case top[col] && bottom[col]:
				ch = BlockFull
			case top[col]:
				ch = BlockUpperHalf
			case bottom[col]:
				ch = BlockLowerHalf
			default:
				continue
			}
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, ch)
		}
	}

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// RenderBorder frames the canvas when the terminal leaves room around it.
// Horizontal bars need a row offset, vertical bars a column offset.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1
	bar := strings.Repeat("─", c.cols)

	var buf strings.Builder
	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, bar)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row < c.offsetRow+c.rows+1; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// LogicalToCell converts logical coordinates to a 1-based cell position
// relative to the canvas origin.
func (c *Canvas) LogicalToCell(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
