package raster

import "github.com/andycking/turtlego/render"

// Line draws from p to q using an integer Bresenham DDA, inclusive of
// both endpoints. Turtle-space y is inverted to screen convention
// before stepping.
func Line(buf *PixBuf, p, q render.Point, color render.Color) {
	x0 := int(p.X)
	y0 := -int(p.Y)
	x1 := int(q.X)
	y1 := -int(q.Y)

	dx := x1 - x0
	dy := y1 - y0
	adx := (abs(dx) + 1) << 2
	ady := (abs(dy) + 1) << 2

	sx := -1
	if dx > 0 {
		sx = 1
	}
	sy := -1
	if dy > 0 {
		sy = 1
	}

	x, y := x0, y0

	if adx > ady {
		eps := (ady - adx) >> 1
		for {
			if sx < 0 && x < x1 {
				break
			}
			if sx >= 0 && x > x1 {
				break
			}
			buf.writeXY(x, y, color)
			eps += ady
			if (eps << 1) >= adx {
				y += sy
				eps -= adx
			}
			x += sx
		}
	} else {
		eps := (adx - ady) >> 1
		for {
			if sy < 0 && y < y1 {
				break
			}
			if sy >= 0 && y > y1 {
				break
			}
			buf.writeXY(x, y, color)
			eps += adx
			if (eps << 1) >= ady {
				x += sx
				eps -= ady
			}
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
