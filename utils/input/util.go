package input

import "fmt"

// checkFrame 检查一帧数据
// 说明：车道号是否合法由规划周期自行检查（跳过该帧），这里只拒绝无法解释的数值
func checkFrame(f Frame) error {
	if f.PrevSize < 0 {
		return fmt.Errorf("negative prev_size %d", f.PrevSize)
	}
	if f.Speed < 0 {
		return fmt.Errorf("negative speed %v", f.Speed)
	}
	return nil
}
