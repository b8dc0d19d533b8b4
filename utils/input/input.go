package input

import (
	"context"
	"fmt"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v2"
)

// Frame 录制场景中的一个规划周期
// 功能：本车状态与该周期的感知融合车辆列表
type Frame struct {
	Step     int32             `yaml:"step" bson:"step"`
	Ego      vehicle.Ego       `yaml:"ego" bson:"ego"`
	Speed    float64           `yaml:"speed" bson:"speed"`         // 本车当前速度
	PrevSize int               `yaml:"prev_size" bson:"prev_size"` // 尚未执行的路径点数
	Vehicles []vehicle.Tracked `yaml:"vehicles" bson:"vehicles"`
}

// Scenario 录制场景
type Scenario struct {
	Frames []Frame `yaml:"frames"`
}

// Init 加载录制场景
// 功能：根据配置从文件或MongoDB加载场景，未配置场景时返回nil
// 参数：ctx-用于MongoDB访问，c-配置
// 返回：场景，加载或校验失败时返回错误
// 算法说明：
// 1. 未配置input.scenario：返回nil，使用合成交通流
// 2. 配置了文件：从YAML文件加载（优先于MongoDB）
// 3. 否则连接input.uri，按step升序读取db.col中的所有文档
// 4. 检查每一帧的数据
func Init(ctx context.Context, c config.Config) (*Scenario, error) {
	path := c.Input.Scenario
	if path == nil {
		return nil, nil
	}
	var (
		s   *Scenario
		err error
	)
	if path.File != "" {
		s, err = LoadFile(path.File)
	} else {
		if c.Input.URI == "" {
			return nil, fmt.Errorf("input: scenario has neither file nor mongo uri")
		}
		client := mongoutil.NewClient(c.Input.URI)
		defer client.Disconnect(context.Background())
		s, err = LoadMongo(ctx, client, *path)
	}
	if err != nil {
		return nil, err
	}
	for i, f := range s.Frames {
		if err := checkFrame(f); err != nil {
			return nil, fmt.Errorf("input: frame %d: %w", i, err)
		}
	}
	log.Infof("scenario loaded: %d frames", len(s.Frames))
	return s, nil
}

// LoadFile 从YAML文件加载场景
func LoadFile(path string) (*Scenario, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	var s Scenario
	if err := yaml.UnmarshalStrict(file, &s); err != nil {
		return nil, fmt.Errorf("input: %s: %w", path, err)
	}
	return &s, nil
}

// LoadMongo 从MongoDB集合加载场景，每个文档为一帧
func LoadMongo(ctx context.Context, client *mongo.Client, path config.InputPath) (*Scenario, error) {
	coll := client.Database(path.GetDb()).Collection(path.GetColl())
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "step", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("input: find %s.%s: %w", path.GetDb(), path.GetColl(), err)
	}
	var frames []Frame
	if err := cursor.All(ctx, &frames); err != nil {
		return nil, fmt.Errorf("input: decode %s.%s: %w", path.GetDb(), path.GetColl(), err)
	}
	return &Scenario{Frames: frames}, nil
}
