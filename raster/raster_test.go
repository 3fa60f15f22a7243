package raster_test

import (
	"testing"

	"github.com/andycking/turtlego/raster"
	"github.com/andycking/turtlego/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineHorizontal(t *testing.T) {
	buf := raster.New(20, 20)
	red := render.Color{R: 255, A: 255}
	raster.Line(buf, render.Point{X: -5, Y: 0}, render.Point{X: 5, Y: 0}, red)

	for x := -5; x <= 5; x++ {
		sx, sy := x+10, 0+10
		idx := (sy*20 + sx) * 4
		assert.Equal(t, byte(255), buf.Bytes()[idx], "x=%d should be painted", x)
	}
}

func TestLineClipsOutOfBounds(t *testing.T) {
	buf := raster.New(4, 4)
	red := render.Color{R: 255, A: 255}
	assert.NotPanics(t, func() {
		raster.Line(buf, render.Point{X: -100, Y: -100}, render.Point{X: 100, Y: 100}, red)
	})
}

func TestFloodFillBasic(t *testing.T) {
	buf := raster.New(10, 10)
	blue := render.Color{B: 255, A: 255}
	raster.FloodFill(buf, render.Point{X: 0, Y: 0}, blue)

	for i := 0; i < len(buf.Bytes()); i += 4 {
		assert.Equal(t, byte(255), buf.Bytes()[i+2])
	}
}

func TestFloodFillNoOpWhenSameColor(t *testing.T) {
	buf := raster.New(10, 10)
	raster.FloodFill(buf, render.Point{X: 0, Y: 0}, render.Color{})
	assert.Equal(t, make([]byte, 10*10*4), buf.Bytes())
}

func TestFloodFillOutOfBoundsIsNoOp(t *testing.T) {
	buf := raster.New(4, 4)
	require.NotPanics(t, func() {
		raster.FloodFill(buf, render.Point{X: 100, Y: 100}, render.Color{R: 1, A: 255})
	})
}

func TestClear(t *testing.T) {
	buf := raster.New(4, 4)
	raster.Line(buf, render.Point{X: 0, Y: 0}, render.Point{X: 1, Y: 0}, render.Color{R: 255, A: 255})
	buf.Clear()
	for _, b := range buf.Bytes() {
		assert.Equal(t, byte(0), b)
	}
}
