package lane

import (
	"errors"
	"fmt"
)

// ErrInvalidLaneIndex 由横向位置换算出的车道号不在道路范围内
var ErrInvalidLaneIndex = errors.New("invalid lane index")

// Index 根据横向位置计算车道号
// 功能：车道号 = int(d / 车道宽度)，向零截断
// 参数：d-横向位置，width-车道宽度
// 返回：车道号，不做范围检查
func Index(d, width float64) int {
	return int(d / width)
}

// Center 车道中心线的横向位置
func Center(index int, width float64) float64 {
	return (float64(index) + .5) * width
}

// Validate 检查车道号是否在[0, count)范围内
// 功能：道路边界之外的d会得到不存在的车道号，上游无法保证d合法时调用
// 返回：越界时返回包装了ErrInvalidLaneIndex的错误
func Validate(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("lane %d outside [0, %d): %w", index, count, ErrInvalidLaneIndex)
	}
	return nil
}
