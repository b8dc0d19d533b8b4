package task

import (
	"flag"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/highway-planner/entity/lane"
	"github.com/tsinghua-fib-lab/highway-planner/entity/planner"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔周期数")
)

// prepare 准备阶段，每周期执行一次
// 功能：取得本周期的本车位置与感知融合车辆列表，并设置调用方负责的状态
// 返回：本车位置、车辆列表；回放结束时ok为false
// 说明：CurSpeed与PrevSize由调用方负责，规划器只读
func (ctx *Context) prepare() (ego vehicle.Ego, fusion []vehicle.Tracked, ok bool) {
	if n := ctx.clock.Elapsed(); *heartBeatInterval > 0 && n > 0 && n%int32(*heartBeatInterval) == 0 {
		ctx.log.Infof(
			"STEP: %d(%v) lane=%d speed=%.2f",
			ctx.clock.InternalStep, ctx.clock, ctx.state.CurLane, ctx.state.CurSpeed,
		)
	}
	if ctx.scenario != nil {
		if ctx.frame >= len(ctx.scenario.Frames) {
			return ego, nil, false
		}
		f := ctx.scenario.Frames[ctx.frame]
		ctx.frame++
		ctx.state.CurSpeed = f.Speed
		ctx.state.PrevSize = f.PrevSize
		return f.Ego, f.Vehicles, true
	}
	ctx.state.PrevSize = ctx.prevSize
	return ctx.ego, ctx.trafficManager.Vehicles(), true
}

// update 规划阶段，每周期执行一次
// 功能：运行规划器，记录结果；合成交通流模式下按结果推进本车与周围车辆
// 算法说明：
// 1. 本车车道号越界时跳过该周期
// 2. 保存规划器返回的新状态，记录指标与统计
// 3. 合成交通流模式下：
//   - 速度向目标速度靠拢，每周期变化不超过MaxA×dt
//   - 按新速度推进s，d直接置于目标车道中心
//   - 推进周围车辆
func (ctx *Context) update(ego vehicle.Ego, fusion []vehicle.Tracked) {
	next, s, err := ctx.planner.CheckedStrategy(ctx.state, ego, fusion)
	if err != nil {
		ctx.log.Warnf("step %d skipped: %v", ctx.clock.InternalStep, err)
		ctx.summary.skip()
		if ctx.metrics != nil {
			ctx.metrics.Skip()
		}
		return
	}
	ctx.state = next
	ctx.summary.add(s)
	if ctx.metrics != nil {
		ctx.metrics.Observe(s)
	}
	if s.Decision != planner.Keep {
		ctx.log.Debugf(
			"step %d: lane %d -> %d (%v), speed=%.2f front=%.1f back=%.1f",
			ctx.clock.InternalStep, next.CurLane, s.Lane, s.Decision, s.Speed, s.FrontDist, s.BackDist,
		)
	}

	if ctx.scenario != nil {
		return
	}
	params := ctx.planner.Params()
	dt := ctx.clock.DT
	dv := params.MaxA * dt
	speed := ctx.state.CurSpeed + lo.Clamp(s.Speed-ctx.state.CurSpeed, -dv, dv)
	ctx.state.CurSpeed = lo.Clamp(speed, 0, params.SpeedLimit)
	ctx.ego.S += ctx.state.CurSpeed * dt
	ctx.ego.D = lane.Center(s.Lane, params.LaneWidth)
	ctx.trafficManager.Update(dt, ctx.ego.S)
}

// Run 运行直到回放结束、达到总周期数或被Close
// 返回：本次运行的统计
func (ctx *Context) Run() Summary {
	for !ctx.closed.Load() {
		ego, fusion, ok := ctx.prepare()
		if !ok {
			break
		}
		ctx.update(ego, fusion)
		if !ctx.clock.Next() {
			break
		}
	}
	summary := ctx.summary.build()
	ctx.log.Infof("engine complete: %+v", summary)
	return summary
}
