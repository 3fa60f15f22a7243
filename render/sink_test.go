package render_test

import (
	"sync"
	"testing"

	"github.com/andycking/turtlego/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanSinkSendAndRecv(t *testing.T) {
	sink := render.NewChanSink(4)
	require.NoError(t, sink.Send(render.Fill{Pos: render.Point{X: 1, Y: 2}}))

	cmd := <-sink.Recv()
	fill, ok := cmd.(render.Fill)
	require.True(t, ok)
	assert.Equal(t, render.Point{X: 1, Y: 2}, fill.Pos)
}

func TestChanSinkSendAfterCloseReportsClosed(t *testing.T) {
	sink := render.NewChanSink(4)
	sink.Close()
	assert.ErrorIs(t, sink.Send(render.Fill{}), render.ErrSinkClosed)
}

func TestChanSinkCloseTerminatesRangeLoop(t *testing.T) {
	sink := render.NewChanSink(4)
	require.NoError(t, sink.Send(render.Fill{}))

	done := make(chan struct{})
	var count int
	go func() {
		for range sink.Recv() {
			count++
		}
		close(done)
	}()

	sink.Close()
	<-done
	assert.Equal(t, 1, count)
}

func TestChanSinkCloseDuringConcurrentSendNeverPanics(t *testing.T) {
	sink := render.NewChanSink(0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = sink.Send(render.Fill{})
		}
	}()

	go func() {
		for range sink.Recv() {
		}
	}()

	sink.Close()
	wg.Wait()
}
