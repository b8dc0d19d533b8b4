package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/highway-planner/clock"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
)

func TestClockRange(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 10, Total: 3, Interval: .5})
	assert.Equal(t, int32(10), c.InternalStep)
	assert.Equal(t, 5., c.T)
	assert.Equal(t, int32(0), c.Elapsed())

	assert.True(t, c.Next())
	assert.True(t, c.Next())
	assert.False(t, c.Next())
	assert.Equal(t, int32(13), c.InternalStep)
	assert.Equal(t, int32(3), c.Elapsed())
	assert.Equal(t, 6.5, c.T)

	c.Init()
	assert.Equal(t, int32(10), c.InternalStep)
}

func TestClockString(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 3725, Total: 1, Interval: 1})
	h, m, s := c.GetHourMinuteSecond()
	assert.Equal(t, 1, h)
	assert.Equal(t, 2, m)
	assert.Equal(t, 5., s)
	assert.Equal(t, "01:02:05.00", c.String())
}
