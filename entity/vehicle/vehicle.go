package vehicle

import "math"

// Tracked 感知融合输出的单车记录
// 功能：描述一个规划周期内被跟踪车辆的快照，调用方持有，规划器只读
// 说明：X/Y为笛卡尔坐标（规划器不使用），S/D为沿道路的曲线坐标
type Tracked struct {
	ID int32   `yaml:"id" bson:"id"`
	X  float64 `yaml:"x" bson:"x"`
	Y  float64 `yaml:"y" bson:"y"`
	VX float64 `yaml:"vx" bson:"vx"` // 速度x分量
	VY float64 `yaml:"vy" bson:"vy"` // 速度y分量
	S  float64 `yaml:"s" bson:"s"`   // 纵向位置
	D  float64 `yaml:"d" bson:"d"`   // 横向位置
}

// Speed 标量速度 sqrt(vx²+vy²)
func (v Tracked) Speed() float64 {
	return math.Hypot(v.VX, v.VY)
}

// ProjectedS 预测新路径开始执行时车辆的纵向位置
// 功能：按匀速模型将车辆沿s方向前推 prevSize×cycleTime 秒
// 参数：prevSize-上一条路径中尚未执行的点数，cycleTime-每个路径点对应的时间
// 返回：预测的纵向位置
func (v Tracked) ProjectedS(prevSize int, cycleTime float64) float64 {
	return v.S + float64(prevSize)*cycleTime*v.Speed()
}

// Ego 本车在当前规划周期的曲线坐标
type Ego struct {
	S float64 `yaml:"s" bson:"s"`
	D float64 `yaml:"d" bson:"d"`
}
