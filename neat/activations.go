package neat

import (
	"math"
	"math/rand"
)

// ActivationFunc is the signature of a scalar activation function.
type ActivationFunc func(x float64) float64

// DefaultActivation is the name substituted for unrecognized activation names.
const DefaultActivation = "sigmoid"

// ActivationFunctions maps function names to the actual activation functions.
// This allows genomes and configuration to refer to activations by name.
var ActivationFunctions = map[string]ActivationFunc{
	"step":       Step,
	"sigmoid":    Sigmoid,
	"tanh":       Tanh,
	"relu":       ReLU,
	"leaky_relu": LeakyReLU,
	"prelu":      PReLU,
	"elu":        ELU,
	"softmax":    SoftmaxScalar,
	"linear":     Linear,
	"swish":      Swish,
}

// activationNames lists the supported names in a fixed order, so random
// resampling during node mutation is reproducible under a seeded source.
var activationNames = []string{
	"step", "sigmoid", "tanh", "relu", "leaky_relu",
	"prelu", "elu", "softmax", "linear", "swish",
}

// GetActivation retrieves an activation function by name.
// Unknown names fall back to sigmoid; this is documented degradation, not an error.
func GetActivation(name string) ActivationFunc {
	if fn, ok := ActivationFunctions[name]; ok {
		return fn
	}
	return Sigmoid
}

// RandomActivationName picks one of the supported activation names uniformly.
func RandomActivationName() string {
	return activationNames[rand.Intn(len(activationNames))]
}

// --- Standard Activation Function Implementations ---

// Step returns 1 for positive inputs and 0 otherwise.
func Step(x float64) float64 {
	if x > 0 {
		return 1.0
	}
	return 0.0
}

// Sigmoid is the logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Tanh is the hyperbolic tangent.
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// ReLU (Rectified Linear Unit) returns max(0, x).
func ReLU(x float64) float64 {
	return math.Max(0, x)
}

// LeakyReLU lets a small gradient through for negative inputs.
func LeakyReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0.01 * x
}

// PReLU is the parametric ReLU with a fixed slope of 0.25 for negative inputs.
func PReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0.25 * x
}

// ELU is the exponential linear unit.
func ELU(x float64) float64 {
	if x > 0 {
		return x
	}
	return math.Exp(x) - 1.0
}

// SoftmaxScalar is softmax applied to a single node: a one-element
// distribution always normalizes to exp(x)/exp(x) = 1, so the output is
// bounded like every other activation. Use Softmax for the vector form.
func SoftmaxScalar(_ float64) float64 {
	return 1.0
}

// Softmax normalizes a vector of values into a probability distribution.
func Softmax(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	maxVal := xs[0]
	for _, x := range xs[1:] {
		if x > maxVal {
			maxVal = x
		}
	}
	out := make([]float64, len(xs))
	sum := 0.0
	for i, x := range xs {
		out[i] = math.Exp(x - maxVal)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Linear is the identity function.
func Linear(x float64) float64 {
	return x
}

// Swish is x * sigmoid(x).
func Swish(x float64) float64 {
	return x * Sigmoid(x)
}
