package neat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetActivationKnownNames(t *testing.T) {
	for _, name := range activationNames {
		assert.NotNil(t, GetActivation(name), "activation %q should resolve", name)
	}
}

func TestGetActivationUnknownFallsBackToSigmoid(t *testing.T) {
	fn := GetActivation("no_such_function")
	assert.InDelta(t, Sigmoid(0.3), fn(0.3), 1e-12)
	assert.InDelta(t, 0.5, fn(0), 1e-12)
}

func TestActivationValues(t *testing.T) {
	assert.Equal(t, 1.0, Step(0.1))
	assert.Equal(t, 0.0, Step(-0.1))
	assert.Equal(t, 0.0, Step(0.0))

	assert.Equal(t, 0.0, ReLU(-2))
	assert.Equal(t, 2.0, ReLU(2))

	assert.InDelta(t, -0.02, LeakyReLU(-2), 1e-12)
	assert.InDelta(t, -0.5, PReLU(-2), 1e-12)
	assert.InDelta(t, math.Exp(-1)-1, ELU(-1), 1e-12)

	assert.Equal(t, 1.0, SoftmaxScalar(0))
	assert.Equal(t, 1.0, SoftmaxScalar(500), "a one-element distribution sums to 1")
	assert.Equal(t, 1.0, SoftmaxScalar(-500))

	assert.Equal(t, 3.5, Linear(3.5))
	assert.InDelta(t, 2*Sigmoid(2), Swish(2), 1e-12)
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.InDelta(t, math.Tanh(0.7), Tanh(0.7), 1e-12)
}

func TestSoftmaxVectorNormalizes(t *testing.T) {
	out := Softmax([]float64{1, 2, 3})
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.True(t, out[2] > out[1] && out[1] > out[0])
	assert.Nil(t, Softmax(nil))
}

func TestRandomActivationNameIsSupported(t *testing.T) {
	for i := 0; i < 50; i++ {
		name := RandomActivationName()
		_, ok := ActivationFunctions[name]
		assert.True(t, ok, "random name %q must be supported", name)
	}
}
