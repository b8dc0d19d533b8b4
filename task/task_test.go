package task_test

import (
	"testing"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/highway-planner/entity/lane"
	"github.com/tsinghua-fib-lab/highway-planner/entity/planner"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
	"github.com/tsinghua-fib-lab/highway-planner/metrics"
	"github.com/tsinghua-fib-lab/highway-planner/task"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
	"github.com/tsinghua-fib-lab/highway-planner/utils/input"
)

func replayScenario() *input.Scenario {
	return &input.Scenario{Frames: []input.Frame{
		{
			Step:     0,
			Ego:      vehicle.Ego{S: 100, D: 6},
			Speed:    20,
			Vehicles: []vehicle.Tracked{{ID: 1, VX: 10, S: 105, D: 6}},
		},
		// d越界，跳过
		{Step: 1, Ego: vehicle.Ego{S: 110, D: -5}, Speed: 20},
		{Step: 2, Ego: vehicle.Ego{S: 120, D: 6}, Speed: 15, PrevSize: 7},
	}}
}

func TestReplay(t *testing.T) {
	reg := prometheus.NewRegistry()
	ctx := task.NewContext(config.Default(), replayScenario(), metrics.New(reg))
	summary := ctx.Run()

	assert.Equal(t, 2, summary.Cycles)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.LaneChanges)
	assert.InDelta(t, planner.SpeedLimit, summary.MeanSpeed, 1e-9)
	assert.InDelta(t, 0, summary.StdSpeed, 1e-9)
	assert.Equal(t, planner.FrontMaxDist, summary.MinFrontDist)

	assert.Equal(t, planner.Context{
		CurSpeed:            15,
		CurLane:             1,
		CurLeadVehicleSpeed: planner.SpeedLimit,
		PrevSize:            7,
	}, ctx.State())

	assert.Equal(t, 3., counterValue(t, reg, "planner_cycles_total"))
	assert.Equal(t, 1., counterValue(t, reg, "planner_skipped_cycles_total"))
}

// counterValue 从registry中取出无标签计数器的值
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestReplayStopsAtTotalSteps(t *testing.T) {
	c := config.Default()
	c.Control.Step.Total = 1
	summary := task.NewContext(c, replayScenario(), nil).Run()
	assert.Equal(t, 1, summary.Cycles)
	assert.Equal(t, 0, summary.Skipped)
}

func TestSyntheticOpenRoad(t *testing.T) {
	c := config.Default()
	c.Control.Step.Total = 200
	c.Traffic.VehiclesPerLane = 0
	ctx := task.NewContext(c, nil, nil)
	summary := ctx.Run()

	assert.Equal(t, 200, summary.Cycles)
	assert.Equal(t, 0, summary.LaneChanges)
	assert.InDelta(t, planner.SpeedLimit, summary.MeanSpeed, 1e-9)
	assert.Equal(t, planner.FrontMaxDist, summary.MinFrontDist)

	state := ctx.State()
	assert.Equal(t, 1, state.CurLane)
	assert.InDelta(t, planner.SpeedLimit, state.CurSpeed, 1e-9)
	// 50个路径点，每周期消耗0.2/0.02=10个
	assert.Equal(t, 40, state.PrevSize)
	assert.Greater(t, ctx.Ego().S, 0.)
	assert.Equal(t, lane.Center(1, planner.LaneWidth), ctx.Ego().D)
}

func TestSyntheticTraffic(t *testing.T) {
	c := config.Default()
	c.Control.Step.Total = 300
	c.Planner.ParallelLanes = true
	ctx := task.NewContext(c, nil, nil)
	summary := ctx.Run()

	assert.Equal(t, 300, summary.Cycles)
	assert.Equal(t, 0, summary.Skipped)
	assert.GreaterOrEqual(t, summary.MinFrontDist, 1.)
	assert.LessOrEqual(t, summary.MeanSpeed, planner.SpeedLimit)
	assert.NoError(t, lane.Validate(lane.Index(ctx.Ego().D, planner.LaneWidth), planner.LaneCount))
}

func TestClose(t *testing.T) {
	ctx := task.NewContext(config.Default(), nil, nil)
	ctx.Close()
	summary := ctx.Run()
	assert.Equal(t, 0, summary.Cycles)
	assert.Equal(t, mathutil.INF, summary.MinFrontDist)
}
