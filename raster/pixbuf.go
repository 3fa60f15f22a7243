// Package raster rasterizes the render-command stream into a fixed
// RGBA pixel buffer: integer DDA line drawing and 4-connected flood
// fill.
package raster

import "github.com/andycking/turtlego/render"

// Default canvas dimensions.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// PixBuf is a fixed W×H RGBA8 pixel buffer, origin at centre.
type PixBuf struct {
	width, height int
	bytes         []byte
}

// New returns a PixBuf of the given dimensions, zeroed.
func New(width, height int) *PixBuf {
	return &PixBuf{
		width:  width,
		height: height,
		bytes:  make([]byte, width*height*4),
	}
}

func (p *PixBuf) Width() int  { return p.width }
func (p *PixBuf) Height() int { return p.height }
func (p *PixBuf) Bytes() []byte { return p.bytes }

// screenXY converts a centre-origin integer coordinate to pixel-buffer
// coordinates by offsetting half the buffer size. It does not invert y:
// callers pass y already negated to screen convention (+y down).
func (p *PixBuf) screenXY(x, y int) (int, int) {
	return x + p.width/2, y + p.height/2
}

// contains reports whether pixel-buffer coordinates (already converted
// via screenXY) fall inside the buffer.
func (p *PixBuf) contains(sx, sy int) bool {
	return sx >= 0 && sx < p.width && sy >= 0 && sy < p.height
}

func (p *PixBuf) byteIdx(sx, sy int) int {
	return (sy*p.width + sx) * 4
}

// writeXY writes color at centre-origin (x, y) with y already in
// screen convention, clipping silently when out of bounds.
func (p *PixBuf) writeXY(x, y int, c render.Color) {
	sx, sy := p.screenXY(x, y)
	if !p.contains(sx, sy) {
		return
	}
	idx := p.byteIdx(sx, sy)
	p.bytes[idx] = c.R
	p.bytes[idx+1] = c.G
	p.bytes[idx+2] = c.B
	p.bytes[idx+3] = c.A
}

// readXY reads the color at centre-origin (x, y) with y already in
// screen convention. Out-of-bounds reads return the zero color.
func (p *PixBuf) readXY(x, y int) render.Color {
	sx, sy := p.screenXY(x, y)
	if !p.contains(sx, sy) {
		return render.Color{}
	}
	idx := p.byteIdx(sx, sy)
	return render.Color{R: p.bytes[idx], G: p.bytes[idx+1], B: p.bytes[idx+2], A: p.bytes[idx+3]}
}

// Clear zeroes the entire buffer. The renderer may observe the buffer
// from another goroutine between ticks; callers holding the consumer's
// lock are expected to serialize Clear against reads.
func (p *PixBuf) Clear() {
	for i := range p.bytes {
		p.bytes[i] = 0
	}
}
