package planner

import (
	"fmt"
	"math"
	"sync"

	"github.com/tsinghua-fib-lab/highway-planner/entity/lane"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
)

// Decision 本周期的车道决策
type Decision int

const (
	Keep  Decision = iota // 保持车道
	Left                  // 向左变道
	Right                 // 向右变道
)

func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Strategy 一个规划周期的输出，交给轨迹生成
type Strategy struct {
	Lane      int      // 目标车道
	Speed     float64  // 目标速度
	FrontDist float64  // 目标车道上到前车的距离
	BackDist  float64  // 目标车道上到后车的距离
	Cost      float64  // 目标车道的代价（变道时含惩罚）
	Decision  Decision // 相对当前车道的决策
	Untracked int      // 车道偏移超出跟踪范围而被忽略的车辆数
}

// candidate 参与比较的候选车道
type candidate struct {
	eval     LaneEvaluation
	decision Decision
	offset   int
}

// Strategy 规划主函数
// 功能：根据本车位置与感知融合的车辆列表选出目标车道与目标速度
// 参数：ctx-上一周期的规划状态，ego-本车位置，fusion-感知融合车辆列表
// 返回：更新后的规划状态与本周期的规划结果
// 算法说明：
// 1. 由d计算当前车道，按车道偏移将车辆分为五组，偏移超过±2的车辆忽略
// 2. 当前车道号>0时评估左侧车道，以左侧第二条车道为远端参考
// 3. 无条件评估本车道，不使用远端参考
// 4. 当前车道号<LaneCount-1时评估右侧车道，以右侧第二条车道为远端参考
// 5. 未评估的车道代价为MaxLaneCost，速度为0
// 6. 变道候选的代价加上LaneChangePenalty×|代价|，按左、本、右的顺序取严格更小者
// 说明：平局时本车道优先；左右平局时左侧优先
func (p *Planner) Strategy(
	ctx Context, ego vehicle.Ego, fusion []vehicle.Tracked,
) (Context, Strategy) {
	curLane := lane.Index(ego.D, p.params.LaneWidth)
	b := lane.Partition(fusion, curLane, p.params.LaneWidth)
	if len(b.Dropped) > 0 {
		log.Tracef("lane %d: %d vehicles beyond tracked offset", curLane, len(b.Dropped))
	}

	unevaluated := LaneEvaluation{Cost: p.params.MaxLaneCost}
	left, keep, right := unevaluated, unevaluated, unevaluated
	canLeft := curLane > 0
	canRight := curLane < p.params.LaneCount-1

	evalLeft := func() { left = p.LaneCost(ctx.PrevSize, ego.S, b.Left, false, b.FarLeft) }
	evalKeep := func() { keep = p.LaneCost(ctx.PrevSize, ego.S, b.Keep, true, nil) }
	evalRight := func() { right = p.LaneCost(ctx.PrevSize, ego.S, b.Right, false, b.FarRight) }

	if p.params.ParallelLanes {
		var wg sync.WaitGroup
		run := func(f func()) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				f()
			}()
		}
		if canLeft {
			run(evalLeft)
		}
		run(evalKeep)
		if canRight {
			run(evalRight)
		}
		wg.Wait()
	} else {
		if canLeft {
			evalLeft()
		}
		evalKeep()
		if canRight {
			evalRight()
		}
	}
	log.Debugf(
		"lane %d costs: left=%.4f keep=%.4f right=%.4f",
		curLane, left.Cost, keep.Cost, right.Cost,
	)

	target := Strategy{
		Lane:      curLane,
		Speed:     ctx.CurSpeed,
		FrontDist: p.params.FrontMaxDist,
		BackDist:  p.params.BackMaxDist,
		Cost:      p.params.MaxLaneCost,
		Decision:  Keep,
		Untracked: len(b.Dropped),
	}
	for _, c := range []candidate{
		{eval: left, decision: Left, offset: -1},
		{eval: keep, decision: Keep, offset: 0},
		{eval: right, decision: Right, offset: 1},
	} {
		cost := c.eval.Cost
		if c.decision != Keep {
			cost += p.params.LaneChangePenalty * math.Abs(cost)
		}
		if cost < target.Cost {
			target.Cost = cost
			target.Lane = curLane + c.offset
			target.Speed = c.eval.Speed
			target.FrontDist = c.eval.FrontDist
			target.BackDist = c.eval.BackDist
			target.Decision = c.decision
		}
	}

	next := ctx
	next.CurLane = curLane
	next.CurLeadVehicleSpeed = keep.Speed
	return next, target
}

// CheckedStrategy 先检查本车车道号再规划
// 功能：d超出道路范围时返回包装了lane.ErrInvalidLaneIndex的错误，不进行规划
func (p *Planner) CheckedStrategy(
	ctx Context, ego vehicle.Ego, fusion []vehicle.Tracked,
) (Context, Strategy, error) {
	if err := lane.Validate(lane.Index(ego.D, p.params.LaneWidth), p.params.LaneCount); err != nil {
		return ctx, Strategy{}, fmt.Errorf("planner: ego d=%.2f: %w", ego.D, err)
	}
	next, s := p.Strategy(ctx, ego, fusion)
	return next, s, nil
}
