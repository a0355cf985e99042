package neat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, clamp(-3, 0, 1))
	assert.Equal(t, 1.0, clamp(7, 0, 1))
}

func TestUniformStaysInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := uniform(-2, 2)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 2.0)
	}
}

func TestStatisticalHelpers(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.Equal(t, 2.5, Mean(values))
	assert.InDelta(t, 1.2909944, Stdev(values), 1e-6)
	assert.Equal(t, 10.0, Sum(values))
	assert.Equal(t, 4.0, MaxFloat(values))
	assert.Equal(t, 1.0, MinFloat(values))
}

func TestStatisticalHelpersEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Stdev(nil))
	assert.Equal(t, 0.0, Stdev([]float64{5}))
	assert.True(t, math.IsInf(MaxFloat(nil), -1))
	assert.True(t, math.IsInf(MinFloat(nil), 1))
}
