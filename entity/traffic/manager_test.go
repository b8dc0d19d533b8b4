package traffic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/highway-planner/entity/lane"
	"github.com/tsinghua-fib-lab/highway-planner/entity/traffic"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
)

func testConfig() config.Traffic {
	c := config.Default().Traffic
	c.Seed = 3
	c.VehiclesPerLane = 4
	return c
}

func TestNewManager(t *testing.T) {
	m := traffic.NewManager(testConfig(), 4, 3, 0)
	assert.Equal(t, 12, m.Len())
	for _, v := range m.Vehicles() {
		l := lane.Index(v.D, 4)
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 3)
		assert.LessOrEqual(t, v.S, 150.)
		assert.GreaterOrEqual(t, v.S, -150.)
		assert.GreaterOrEqual(t, v.Speed(), 12.)
		assert.LessOrEqual(t, v.Speed(), 22.3)
	}
}

func TestManagerDeterministic(t *testing.T) {
	a := traffic.NewManager(testConfig(), 4, 3, 0)
	b := traffic.NewManager(testConfig(), 4, 3, 0)
	for i := 0; i < 20; i++ {
		a.Update(.2, float64(i)*4)
		b.Update(.2, float64(i)*4)
	}
	assert.Equal(t, a.Vehicles(), b.Vehicles())
}

func TestManagerKeepsDensity(t *testing.T) {
	m := traffic.NewManager(testConfig(), 4, 3, 0)
	egoS := 0.
	for i := 0; i < 500; i++ {
		// 本车以5米/秒行驶，明显慢于车流，车辆会不断驶出观察范围
		egoS += 5 * .2
		m.Update(.2, egoS)
		assert.Equal(t, 12, m.Len())
	}
	for _, v := range m.Vehicles() {
		assert.InDelta(t, egoS, v.S, 150)
	}
}

func TestManagerEmpty(t *testing.T) {
	c := testConfig()
	c.VehiclesPerLane = 0
	m := traffic.NewManager(c, 4, 3, 0)
	m.Update(.2, 10)
	assert.Empty(t, m.Vehicles())
}
