package planner

import (
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
)

// LaneCost 计算一条候选车道的代价
// 功能：根据候选车道上最近前后车的距离计算代价，距离越小代价越大
// 参数：prevSize-尚未执行的路径点数，s-本车纵向位置，vehicles-候选车道上的车辆，
// sameLane-候选车道是否为本车道，farLane-候选车道外侧再隔一条车道上的车辆（可为空）
// 返回：代价以及候选车道自身的可达速度、前后车距离
// 算法说明：
// 1. 代价 = 1/前车距离 + 1/后车距离，本车道不计后车项（不变道就不会给后车带来新的风险）
// 2. 远端车道有车时，按同样方法（含后车项）计算远端车道代价
// 3. 若远端代价更低，且候选车道前方大于FarLaneFrontMin、后方大于FarLaneBackMin，
// 则用远端代价替代候选代价，鼓励经由候选车道驶向更空的远端车道
// 说明：远端替代只改变代价，返回的速度与距离始终是候选车道本身的
func (p *Planner) LaneCost(
	prevSize int, s float64, vehicles []vehicle.Tracked, sameLane bool, farLane []vehicle.Tracked,
) LaneEvaluation {
	closest := p.ScanClosest(prevSize, s, p.defaultBounds(), vehicles)

	backWeight := 1.
	if sameLane {
		backWeight = 0
	}
	cost := 1/closest.FrontDist + backWeight/closest.BackDist

	if len(farLane) > 0 {
		far := p.ScanClosest(prevSize, s, p.defaultBounds(), farLane)
		farCost := 1/far.FrontDist + 1/far.BackDist
		if farCost < cost &&
			closest.FrontDist > p.params.FarLaneFrontMin &&
			closest.BackDist > p.params.FarLaneBackMin {
			log.Tracef("far lane cost %.4f overrides %.4f", farCost, cost)
			cost = farCost
		}
	}

	return LaneEvaluation{
		Cost:      cost,
		Speed:     closest.FrontSpeed,
		FrontDist: closest.FrontDist,
		BackDist:  closest.BackDist,
	}
}
