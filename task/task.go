package task

import (
	"math"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/highway-planner/clock"
	"github.com/tsinghua-fib-lab/highway-planner/entity/lane"
	"github.com/tsinghua-fib-lab/highway-planner/entity/planner"
	"github.com/tsinghua-fib-lab/highway-planner/entity/traffic"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
	"github.com/tsinghua-fib-lab/highway-planner/metrics"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
	"github.com/tsinghua-fib-lab/highway-planner/utils/input"
)

// Context 规划任务上下文
// 功能：包含一次运行的所有变量和状态，驱动规划器逐周期运行
// 说明：有录制场景时逐帧回放，否则使用合成交通流并按规划结果推进本车
type Context struct {
	// 运行ID，附加在日志上
	runID string
	log   *logrus.Entry
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock
	// 配置
	config config.Config
	// 规划器与跨周期状态
	planner *planner.Planner
	state   planner.Context

	// 录制场景与下一帧的下标
	scenario *input.Scenario
	frame    int

	// 合成交通流
	trafficManager *traffic.Manager
	ego            vehicle.Ego
	prevSize       int

	metrics *metrics.Metrics
	summary summaryBuilder
}

// NewContext 创建规划任务上下文
// 参数：c-配置，scenario-录制场景（为nil时使用合成交通流），m-指标（可为nil）
// 返回：初始化完成的Context实例
func NewContext(c config.Config, scenario *input.Scenario, m *metrics.Metrics) *Context {
	runID := uuid.NewString()
	ctx := &Context{
		runID:    runID,
		log:      log.WithField("run", runID),
		clock:    clock.New(c.Control.Step),
		config:   c,
		planner:  planner.New(c.Planner),
		scenario: scenario,
		metrics:  m,
		summary:  newSummaryBuilder(),
	}
	ctx.Init()
	return ctx
}

// Init 重置时钟与规划状态
// 算法说明：
// 1. 重置时钟和回放下标
// 2. 合成交通流模式下，本车位于cfg.EgoLane中心、s=0，并在其周围生成车辆
// 3. 剩余路径点数 = PathPoints - 每周期消耗的点数（Interval/CycleTime），不小于0
func (ctx *Context) Init() {
	ctx.clock.Init()
	ctx.frame = 0
	ctx.summary = newSummaryBuilder()
	c := ctx.config
	ctx.state = planner.Context{CurLane: c.Traffic.EgoLane}
	if ctx.scenario != nil {
		ctx.log.Infof("replay mode: %d frames", len(ctx.scenario.Frames))
		return
	}
	ctx.ego = vehicle.Ego{S: 0, D: lane.Center(c.Traffic.EgoLane, c.Planner.LaneWidth)}
	ctx.state.CurSpeed = c.Traffic.EgoSpeed
	consumed := int(math.Round(c.Control.Step.Interval / c.Planner.CycleTime))
	ctx.prevSize = max(0, c.Traffic.PathPoints-consumed)
	ctx.trafficManager = traffic.NewManager(c.Traffic, c.Planner.LaneWidth, c.Planner.LaneCount, ctx.ego.S)
	ctx.log.Infof("synthetic mode: %d vehicles, prev_size=%d", ctx.trafficManager.Len(), ctx.prevSize)
}

// Clock 时钟
func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

// State 当前的跨周期规划状态
func (ctx *Context) State() planner.Context {
	return ctx.state
}

// Ego 合成交通流模式下本车的当前位置
func (ctx *Context) Ego() vehicle.Ego {
	return ctx.ego
}

// Close 请求在当前周期结束后停止
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
