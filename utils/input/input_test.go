package input_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/highway-planner/entity/vehicle"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
	"github.com/tsinghua-fib-lab/highway-planner/utils/input"
)

const scenarioYAML = `
frames:
  - step: 0
    ego: {s: 100, d: 6}
    speed: 20
    prev_size: 40
    vehicles:
      - {id: 1, x: 0, y: 0, vx: 10, vy: 0, s: 110, d: 6}
      - {id: 2, vx: 18, s: 90, d: 2}
  - step: 1
    ego: {s: 104, d: 6}
    speed: 20
    prev_size: 38
`

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	s, err := input.LoadFile(writeFile(t, scenarioYAML))
	require.NoError(t, err)
	require.Len(t, s.Frames, 2)

	f := s.Frames[0]
	assert.Equal(t, vehicle.Ego{S: 100, D: 6}, f.Ego)
	assert.Equal(t, 20., f.Speed)
	assert.Equal(t, 40, f.PrevSize)
	assert.Equal(t, []vehicle.Tracked{
		{ID: 1, VX: 10, S: 110, D: 6},
		{ID: 2, VX: 18, S: 90, D: 2},
	}, f.Vehicles)
	assert.Empty(t, s.Frames[1].Vehicles)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := input.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = input.LoadFile(writeFile(t, "frames:\n  - egoo: {}\n"))
	assert.Error(t, err)
}

func TestInitWithoutScenario(t *testing.T) {
	s, err := input.Init(context.Background(), config.Default())
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestInitFromFile(t *testing.T) {
	c := config.Default()
	c.Input.Scenario = &config.InputPath{File: writeFile(t, scenarioYAML)}
	s, err := input.Init(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, s.Frames, 2)
}

func TestInitRejectsBadFrame(t *testing.T) {
	c := config.Default()
	c.Input.Scenario = &config.InputPath{File: writeFile(t, "frames:\n  - prev_size: -3\n")}
	_, err := input.Init(context.Background(), c)
	assert.ErrorContains(t, err, "frame 0")
}

func TestInitRequiresSource(t *testing.T) {
	c := config.Default()
	c.Input.Scenario = &config.InputPath{DB: "sim", Col: "frames"}
	_, err := input.Init(context.Background(), c)
	assert.Error(t, err)
}
