package raster

import "github.com/andycking/turtlego/render"

type point struct{ x, y int }

// FloodFill performs a 4-connected BFS flood fill starting at p,
// replacing every pixel strictly equal to the start color with color.
// It is a no-op if the start color already equals color or the start
// pixel lies outside the buffer.
func FloodFill(buf *PixBuf, p render.Point, color render.Color) {
	x := int(p.X)
	y := -int(p.Y)

	sx, sy := buf.screenXY(x, y)
	if !buf.contains(sx, sy) {
		return
	}

	start := buf.readXY(x, y)
	if start == color {
		return
	}

	queue := []point{{x, y}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if buf.readXY(n.x, n.y) != start {
			continue
		}
		buf.writeXY(n.x, n.y, color)

		neighbors := [4]point{
			{n.x - 1, n.y},
			{n.x + 1, n.y},
			{n.x, n.y - 1},
			{n.x, n.y + 1},
		}
		for _, nb := range neighbors {
			nsx, nsy := buf.screenXY(nb.x, nb.y)
			if buf.contains(nsx, nsy) {
				queue = append(queue, nb)
			}
		}
	}
}
