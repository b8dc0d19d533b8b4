package lane

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
)

// MaxTrackedOffset 跟踪的最大车道偏移量
// 功能：与本车车道偏移超过该值的车辆不参与规划，分入Dropped
const MaxTrackedOffset = 2

// Offset 车辆所在车道相对本车车道的偏移，负数为左侧
type Offset int

const (
	FarLeft  Offset = -2 // 左侧第二条车道
	Left     Offset = -1 // 左侧车道
	Keep     Offset = 0  // 本车道
	Right    Offset = 1  // 右侧车道
	FarRight Offset = 2  // 右侧第二条车道
)

// Buckets 按车道偏移分组后的车辆
// 说明：每组内保持输入顺序
type Buckets struct {
	FarLeft  []vehicle.Tracked
	Left     []vehicle.Tracked
	Keep     []vehicle.Tracked
	Right    []vehicle.Tracked
	FarRight []vehicle.Tracked
	Dropped  []vehicle.Tracked // 偏移超过MaxTrackedOffset的车辆
}

// Partition 按相对本车的车道偏移将车辆分组
// 功能：计算每辆车的车道号与curLane之差，分入五个组
// 参数：vehicles-感知融合车辆列表，curLane-本车车道号，width-车道宽度
// 返回：分组结果
// 算法说明：
// 1. 用lo.GroupBy按偏移量分组
// 2. 偏移在±MaxTrackedOffset以内的组映射到对应字段
// 3. 其余车辆按输入顺序放入Dropped
func Partition(vehicles []vehicle.Tracked, curLane int, width float64) Buckets {
	offsetOf := func(v vehicle.Tracked) Offset {
		return Offset(Index(v.D, width) - curLane)
	}
	groups := lo.GroupBy(vehicles, offsetOf)
	return Buckets{
		FarLeft:  groups[FarLeft],
		Left:     groups[Left],
		Keep:     groups[Keep],
		Right:    groups[Right],
		FarRight: groups[FarRight],
		Dropped: lo.Filter(vehicles, func(v vehicle.Tracked, _ int) bool {
			o := offsetOf(v)
			return o < -MaxTrackedOffset || o > MaxTrackedOffset
		}),
	}
}
