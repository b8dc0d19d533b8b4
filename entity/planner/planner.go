package planner

const (
	LaneWidth         = 4      // 车道宽度（米）
	LaneCount         = 3      // 车道数，车道号为0..LaneCount-1
	SpeedLimit        = 22.3   // 道路限速
	MaxLaneCost       = 1000.0 // 未评估车道的代价
	FrontMaxDist      = 100.0  // 前方最大观察距离
	BackMaxDist       = 1000.0 // 后方最大观察距离
	LaneChangePenalty = .2     // 变道代价惩罚系数
	CycleTime         = .02    // 每个路径点对应的时间（秒）
	MaxA              = 9      // 最大加速度
)

// Params 规划器参数
// 功能：包含所有可调的常量，默认值见DefaultParams
// 说明：yaml标签用于配置文件，validate标签由配置加载时校验
type Params struct {
	LaneWidth         float64 `yaml:"lane_width" validate:"gt=0"`
	LaneCount         int     `yaml:"lane_count" validate:"gte=1"`
	SpeedLimit        float64 `yaml:"speed_limit" validate:"gt=0"`
	MaxLaneCost       float64 `yaml:"max_lane_cost" validate:"gt=0"`
	FrontMaxDist      float64 `yaml:"front_max_dist" validate:"gt=0"`
	BackMaxDist       float64 `yaml:"back_max_dist" validate:"gt=0"`
	LaneChangePenalty float64 `yaml:"lane_change_penalty" validate:"gte=0"`
	CycleTime         float64 `yaml:"cycle_time" validate:"gt=0"`
	MaxA              float64 `yaml:"max_a" validate:"gt=0"`

	// 车距下限，防止代价计算除零
	MinGap float64 `yaml:"min_gap" validate:"gt=0"`
	// 前车距离小于FollowDist时跟随前车速度，小于BrakeDist时速度再乘以BrakeFactor
	FollowDist  float64 `yaml:"follow_dist" validate:"gtefield=BrakeDist"`
	BrakeDist   float64 `yaml:"brake_dist" validate:"gte=0"`
	BrakeFactor float64 `yaml:"brake_factor" validate:"gt=0,lte=1"`
	// 只关注该距离以内的后车
	BackWatchDist float64 `yaml:"back_watch_dist" validate:"gte=0"`
	// 借道前往远端车道时，候选车道前后所需的空间
	FarLaneFrontMin float64 `yaml:"far_lane_front_min" validate:"gte=0"`
	FarLaneBackMin  float64 `yaml:"far_lane_back_min" validate:"gte=0"`

	ParallelLanes bool `yaml:"parallel_lanes"` // 并行评估左/本/右三条候选车道
}

// DefaultParams 默认参数
func DefaultParams() Params {
	return Params{
		LaneWidth:         LaneWidth,
		LaneCount:         LaneCount,
		SpeedLimit:        SpeedLimit,
		MaxLaneCost:       MaxLaneCost,
		FrontMaxDist:      FrontMaxDist,
		BackMaxDist:       BackMaxDist,
		LaneChangePenalty: LaneChangePenalty,
		CycleTime:         CycleTime,
		MaxA:              MaxA,
		MinGap:            1,
		FollowDist:        20,
		BrakeDist:         10,
		BrakeFactor:       .5,
		BackWatchDist:     5,
		FarLaneFrontMin:   15,
		FarLaneBackMin:    5,
	}
}

// Context 跨周期携带的规划状态
// 功能：替代进程级的可变状态，由调用方传入Strategy并接收更新后的副本
// 说明：CurSpeed与PrevSize由调用方每周期设置，规划器只读；
// CurLane与CurLeadVehicleSpeed由Strategy写入返回值
type Context struct {
	CurSpeed            float64 // 本车当前速度
	CurLane             int     // 本车当前车道
	CurLeadVehicleSpeed float64 // 本车道前车（或限速）对应的可行速度
	PrevSize            int     // 正在执行的路径中尚未消耗的点数
}

// Neighbors 某条车道上距离本车最近的前后车
type Neighbors struct {
	FrontDist  float64
	FrontSpeed float64
	BackDist   float64
	BackSpeed  float64
}

// LaneEvaluation 单条候选车道的评估结果
type LaneEvaluation struct {
	Cost      float64 // 车道代价，越小越好
	Speed     float64 // 该车道上可达的速度
	FrontDist float64
	BackDist  float64
}

// Planner 行为规划器
// 功能：每个规划周期选出目标车道与目标速度
// 说明：Planner本身不保存跨周期状态，可被多个goroutine同时使用
type Planner struct {
	params Params
}

// New 创建规划器
func New(params Params) *Planner {
	return &Planner{params: params}
}

// Params 规划器使用的参数
func (p *Planner) Params() Params {
	return p.params
}

// defaultBounds 扫描最近车辆时的初始边界：最大观察距离与限速
func (p *Planner) defaultBounds() Neighbors {
	return Neighbors{
		FrontDist:  p.params.FrontMaxDist,
		FrontSpeed: p.params.SpeedLimit,
		BackDist:   p.params.BackMaxDist,
		BackSpeed:  p.params.SpeedLimit,
	}
}
