package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tsinghua-fib-lab/highway-planner/entity/lane"
	"github.com/tsinghua-fib-lab/highway-planner/entity/planner"
	"gopkg.in/yaml.v2"
)

// Default 默认配置
// 功能：规划器参数取默认常量，合成交通流每车道6辆车，运行1000个周期
func Default() Config {
	return Config{
		Planner: planner.DefaultParams(),
		Control: Control{
			Step: ControlStep{Start: 0, Total: 1000, Interval: .2},
		},
		Traffic: Traffic{
			Seed:            1,
			VehiclesPerLane: 6,
			SpawnRange:      300,
			MinSpeed:        12,
			MaxSpeed:        planner.SpeedLimit,
			PathPoints:      50,
			EgoLane:         1,
		},
	}
}

// Load 解析YAML配置
// 功能：在默认配置之上覆盖文件中出现的字段，并进行校验
// 参数：data-YAML文件内容
// 返回：配置，解析或校验失败时返回错误
// 算法说明：
// 1. 以Default()为初值，yaml.UnmarshalStrict只覆盖出现的字段，未知字段报错
// 2. 用validator检查字段范围
// 3. 检查合成交通流的本车初始车道在道路范围内
func Load(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate 校验配置
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := lane.Validate(c.Traffic.EgoLane, c.Planner.LaneCount); err != nil {
		return fmt.Errorf("config: traffic.ego_lane: %w", err)
	}
	return nil
}
