package service_test

import (
	"testing"
	"time"

	"github.com/andycking/turtlego/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForIdle(t *testing.T, rt *service.Runtime) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !rt.Running() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for run to finish")
}

func TestRuntimeGoRunsAndSetsOutput(t *testing.T) {
	rt := service.New(1024, 4, 1, 256, 0)
	ok := rt.Go("repeat 4 { fd 10 rt 90 }")
	require.True(t, ok)
	waitForIdle(t, rt)
	// The program's last statement is a repeat, whose value is Void;
	// Void's string form is empty.
	assert.Equal(t, "", rt.Output())
	assert.False(t, rt.Failed())
}

func TestRuntimeGoDropsOverlappingRequest(t *testing.T) {
	rt := service.New(8_000_000, 4, 1, 256, 0)
	rt.Go("repeat 2000000 { fd 1 }")
	ok := rt.Go("fd 1")
	assert.False(t, ok)
	waitForIdle(t, rt)
}

func TestRuntimeSpeedClampedAndDoubling(t *testing.T) {
	rt := service.New(16, 4, 1, 16, 0)
	rt.SetSpeed(1000)
	assert.Equal(t, uint32(16), rt.Speed())

	rt.SetSpeed(4)
	rt.DoubleSpeed()
	assert.Equal(t, uint32(8), rt.Speed())
	rt.DoubleSpeed()
	assert.Equal(t, uint32(16), rt.Speed())
	rt.DoubleSpeed()
	assert.Equal(t, uint32(16), rt.Speed())

	rt.HalveSpeed()
	assert.Equal(t, uint32(8), rt.Speed())
}

func TestRuntimeErrorOutput(t *testing.T) {
	rt := service.New(1024, 4, 1, 256, 0)
	rt.Go("fd x")
	waitForIdle(t, rt)
	assert.Contains(t, rt.Output(), "no such variable x")
	assert.True(t, rt.Failed())
}

func TestRuntimeFailedClearsOnSuccessfulRun(t *testing.T) {
	rt := service.New(1024, 4, 1, 256, 0)
	rt.Go("fd x")
	waitForIdle(t, rt)
	require.True(t, rt.Failed())

	rt.Go("fd 10")
	waitForIdle(t, rt)
	assert.False(t, rt.Failed())
}
