package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/highway-planner/utils/randengine"
)

func TestSameSeedSameSequence(t *testing.T) {
	a, b := randengine.New(42), randengine.New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestUniform(t *testing.T) {
	e := randengine.New(1)
	for i := 0; i < 1000; i++ {
		v := e.Uniform(-3, 5)
		assert.GreaterOrEqual(t, v, -3.)
		assert.Less(t, v, 5.)
	}
}

func TestDiscreteDistribution(t *testing.T) {
	e := randengine.New(1)
	for i := 0; i < 1000; i++ {
		// 权重为0的索引永远不会被选中
		got := e.DiscreteDistribution([]float64{0, 1, 0, 3})
		assert.Contains(t, []int32{1, 3}, got)
	}
}

func TestPTrue(t *testing.T) {
	e := randengine.New(1)
	for i := 0; i < 100; i++ {
		assert.False(t, e.PTrue(0))
		assert.True(t, e.PTrue(1))
	}
}
