package traffic

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/highway-planner/entity/lane"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
	"github.com/tsinghua-fib-lab/highway-planner/utils/randengine"
)

const (
	followGap       = 15  // 与同车道前车距离小于该值时跟随前车速度
	spawnClearance  = 10  // 本车车道上生成车辆时与本车的最小距离
	laneNoise       = .5  // 车辆偏离车道中心线的最大横向距离
	speedChangeProb = .02 // 每周期改变巡航速度的概率
)

// npc 合成交通流中的车辆
type npc struct {
	id     int32
	lane   int
	s      float64
	d      float64
	v      float64 // 当前速度
	cruise float64 // 巡航速度
}

// Manager 合成交通流管理器
// 功能：在没有录制场景时生成本车周围的车辆，按匀速模型推进，替代外部感知融合
// 说明：道路视为直线，笛卡尔坐标与曲线坐标一致
type Manager struct {
	cfg       config.Traffic
	laneWidth float64
	laneCount int
	generator *randengine.Engine

	npcs   []*npc
	nextID int32
}

// NewManager 创建合成交通流管理器并在egoS周围生成初始车辆
// 参数：cfg-交通流配置，laneWidth-车道宽度，laneCount-车道数，egoS-本车初始纵向位置
func NewManager(cfg config.Traffic, laneWidth float64, laneCount int, egoS float64) *Manager {
	m := &Manager{
		cfg:       cfg,
		laneWidth: laneWidth,
		laneCount: laneCount,
		generator: randengine.New(cfg.Seed),
	}
	half := cfg.SpawnRange / 2
	for l := 0; l < laneCount; l++ {
		for i := 0; i < cfg.VehiclesPerLane; i++ {
			m.spawn(l, egoS+m.generator.Uniform(-half, half), egoS)
		}
	}
	log.Debugf("spawned %d vehicles on %d lanes", len(m.npcs), laneCount)
	return m
}

// spawn 在指定车道与位置生成车辆
// 说明：与本车纵向距离过近时向前挪开
func (m *Manager) spawn(l int, s, egoS float64) {
	if math.Abs(s-egoS) < spawnClearance {
		s = egoS + spawnClearance + m.generator.Uniform(0, spawnClearance)
	}
	cruise := m.generator.Uniform(m.cfg.MinSpeed, m.cfg.MaxSpeed)
	m.npcs = append(m.npcs, &npc{
		id:     m.nextID,
		lane:   l,
		s:      s,
		d:      lane.Center(l, m.laneWidth) + m.generator.Uniform(-laneNoise, laneNoise),
		v:      cruise,
		cruise: cruise,
	})
	m.nextID++
}

// Update 推进一个周期
// 参数：dt-时间步长，egoS-本车推进后的纵向位置
// 算法说明：
// 1. 按小概率重新采样巡航速度
// 2. 与同车道前车距离小于followGap时速度不超过前车，否则恢复巡航速度
// 3. 按匀速模型推进位置
// 4. 离开本车前后SpawnRange/2范围的车辆移除，并在另一端按车道空闲程度重新生成
func (m *Manager) Update(dt, egoS float64) {
	for _, n := range m.npcs {
		if m.generator.PTrue(speedChangeProb) {
			n.cruise = m.generator.Uniform(m.cfg.MinSpeed, m.cfg.MaxSpeed)
		}
		n.v = n.cruise
		if ahead := m.leader(n); ahead != nil && ahead.s-n.s < followGap {
			n.v = math.Min(n.v, ahead.v)
		}
	}
	for _, n := range m.npcs {
		n.s += n.v * dt
	}

	half := m.cfg.SpawnRange / 2
	kept := lo.Filter(m.npcs, func(n *npc, _ int) bool {
		return math.Abs(n.s-egoS) <= half
	})
	removed := len(m.npcs) - len(kept)
	m.npcs = kept
	for i := 0; i < removed; i++ {
		l := int(m.generator.DiscreteDistribution(m.laneWeights()))
		// 交替在前后两端补充车辆
		s := egoS + half - m.generator.Uniform(0, spawnClearance)
		if i%2 == 1 {
			s = egoS - half + m.generator.Uniform(0, spawnClearance)
		}
		m.spawn(l, s, egoS)
	}
}

// leader 同车道最近的前车
func (m *Manager) leader(self *npc) *npc {
	var best *npc
	for _, n := range m.npcs {
		if n == self || n.lane != self.lane || n.s <= self.s {
			continue
		}
		if best == nil || n.s < best.s {
			best = n
		}
	}
	return best
}

// laneWeights 各车道的补充权重，车辆越少权重越大
func (m *Manager) laneWeights() []float64 {
	counts := lo.CountValuesBy(m.npcs, func(n *npc) int { return n.lane })
	weights := make([]float64, m.laneCount)
	for l := range weights {
		weights[l] = 1 / float64(1+counts[l])
	}
	return weights
}

// Vehicles 当前周期的感知融合车辆列表
func (m *Manager) Vehicles() []vehicle.Tracked {
	return lo.Map(m.npcs, func(n *npc, _ int) vehicle.Tracked {
		return vehicle.Tracked{
			ID: n.id,
			X:  n.s,
			Y:  n.d,
			VX: n.v,
			S:  n.s,
			D:  n.d,
		}
	})
}

// Len 当前车辆数
func (m *Manager) Len() int {
	return len(m.npcs)
}
