package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
)

// Clock 规划周期时钟
// 功能：管理规划周期的推进，记录当前周期与对应时间
type Clock struct {
	DT         float64 // 每个规划周期的时间间隔（秒）
	START_STEP int32   // 起始周期
	END_STEP   int32   // 结束周期，运行区间[START, END)

	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前周期
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:         stepConfig.Interval,
		START_STEP: stepConfig.Start,
		END_STEP:   stepConfig.Start + stepConfig.Total,
	}
	c.Init()
	return c
}

// Init 重置到起始周期
func (c *Clock) Init() {
	c.InternalStep = c.START_STEP
	c.T = float64(c.InternalStep) * c.DT
}

// Next 推进一个周期
// 返回：推进后是否仍在运行区间内
func (c *Clock) Next() bool {
	c.InternalStep++
	c.T = float64(c.InternalStep) * c.DT
	return c.InternalStep < c.END_STEP
}

// Elapsed 从起始周期开始已经运行的周期数
func (c *Clock) Elapsed() int32 {
	return c.InternalStep - c.START_STEP
}

// String 获取时钟的字符串表示
// 功能：将当前时间格式化为 HH:MM:SS.ss
func (c *Clock) String() string {
	hour, minute, second := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%05.2f", hour, minute, second)
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 功能：将当前时间分解为小时、分钟、秒三个部分
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
