package planner

import (
	"math"

	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
)

// ScanClosest 在一条车道的车辆中寻找距离本车最近的前车与后车
// 功能：以bounds为初始值，逐车更新前后车的距离与速度
// 参数：prevSize-尚未执行的路径点数，s-本车纵向位置，bounds-初始距离与速度，vehicles-该车道上的车辆
// 返回：更新后的前后车信息；vehicles为空时原样返回bounds
// 算法说明：
// 1. 按匀速模型将车辆位置前推prevSize×CycleTime秒
// 2. 前车：位于本车前方且比当前最近前车更近，距离取max(MinGap, 间距)
//   - 距离小于FollowDist时采用前车速度，保持车距
//   - 距离小于BrakeDist时速度再乘以BrakeFactor，拉开车距
//
// 3. 后车：位于本车后方（含同一位置）且间距小于BackWatchDist
//   - 最后一辆满足条件的车生效，不比较远近
func (p *Planner) ScanClosest(
	prevSize int, s float64, bounds Neighbors, vehicles []vehicle.Tracked,
) Neighbors {
	n := bounds
	for _, v := range vehicles {
		speed := v.Speed()
		checkS := v.ProjectedS(prevSize, p.params.CycleTime)

		if checkS > s && checkS-s < n.FrontDist {
			n.FrontDist = math.Max(p.params.MinGap, checkS-s)
			if n.FrontDist < p.params.FollowDist {
				n.FrontSpeed = speed
			}
			if n.FrontDist < p.params.BrakeDist {
				n.FrontSpeed *= p.params.BrakeFactor
			}
		}

		// TODO: 后车取最后一个满足条件的车辆，应改为与前车一致的取最近
		if s >= checkS && s-checkS < p.params.BackWatchDist {
			n.BackDist = math.Max(p.params.MinGap, s-checkS)
			n.BackSpeed = speed
		}
	}
	return n
}
