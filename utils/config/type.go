package config

import "github.com/tsinghua-fib-lab/highway-planner/entity/planner"

// InputPath 指定场景数据来源的配置（MongoDB、文件系统）
// 功能：定义录制场景的读取位置，文件优先于MongoDB
type InputPath struct {
	DB   string `yaml:"db,omitempty"`   // 数据库名
	Col  string `yaml:"col,omitempty"`  // 集合名
	File string `yaml:"file,omitempty"` // 文件路径（优先级高于MongoDB）
}

// GetDb 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// Input 输入数据配置
// 说明：Scenario为空时使用合成交通流
type Input struct {
	URI      string     `yaml:"uri,omitempty"`      // MongoDB连接字符串
	Scenario *InputPath `yaml:"scenario,omitempty"` // 录制场景
}

// ControlStep 指定规划周期范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start" validate:"gte=0"`
	Total    int32   `yaml:"total" validate:"gt=0"`    // 总周期数
	Interval float64 `yaml:"interval" validate:"gt=0"` // 每个规划周期的时间间隔（秒）
}

// Control 运行控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
}

// Traffic 合成交通流配置
// 功能：没有录制场景时，按该配置随机生成周围车辆
type Traffic struct {
	Seed            uint64  `yaml:"seed"`
	VehiclesPerLane int     `yaml:"vehicles_per_lane" validate:"gte=0"`
	SpawnRange      float64 `yaml:"spawn_range" validate:"gt=0"` // 在本车前后该范围内生成车辆
	MinSpeed        float64 `yaml:"min_speed" validate:"gte=0"`
	MaxSpeed        float64 `yaml:"max_speed" validate:"gtefield=MinSpeed"`
	PathPoints      int     `yaml:"path_points" validate:"gte=0"` // 轨迹生成每周期输出的路径点数
	EgoLane         int     `yaml:"ego_lane" validate:"gte=0"`
	EgoSpeed        float64 `yaml:"ego_speed" validate:"gte=0"`
}

// Config YAML配置文件的根结构
type Config struct {
	Planner planner.Params `yaml:"planner"` // 规划器参数
	Input   Input          `yaml:"input"`   // 输入
	Control Control        `yaml:"control"` // 运行过程控制
	Traffic Traffic        `yaml:"traffic"` // 合成交通流
}
