package task

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/highway-planner/entity/planner"
	"gonum.org/v1/gonum/stat"
)

// Summary 一次运行的统计
type Summary struct {
	Cycles       int     // 完成规划的周期数
	Skipped      int     // 因车道号越界跳过的周期数
	LaneChanges  int     // 决策为变道的周期数
	MeanSpeed    float64 // 目标速度均值
	StdSpeed     float64 // 目标速度标准差
	MinFrontDist float64 // 目标车道前车距离的最小值，没有完成的周期时为mathutil.INF
}

type summaryBuilder struct {
	speeds       []float64
	skipped      int
	laneChanges  int
	minFrontDist float64
}

func newSummaryBuilder() summaryBuilder {
	return summaryBuilder{minFrontDist: mathutil.INF}
}

func (b *summaryBuilder) add(s planner.Strategy) {
	b.speeds = append(b.speeds, s.Speed)
	if s.Decision != planner.Keep {
		b.laneChanges++
	}
	b.minFrontDist = math.Min(b.minFrontDist, s.FrontDist)
}

func (b *summaryBuilder) skip() {
	b.skipped++
}

func (b *summaryBuilder) build() Summary {
	s := Summary{
		Cycles:       len(b.speeds),
		Skipped:      b.skipped,
		LaneChanges:  b.laneChanges,
		MinFrontDist: b.minFrontDist,
	}
	switch len(b.speeds) {
	case 0:
	case 1:
		s.MeanSpeed = b.speeds[0]
	default:
		s.MeanSpeed, s.StdSpeed = stat.MeanStdDev(b.speeds, nil)
	}
	return s
}
