package activation

import "math"

// Func is a scalar activation function.
type Func func(float64) float64

// Logistic maps x into the open interval (0, 1).
func Logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Tanh maps x into (-1, 1).
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// ReLU zeroes negative inputs and passes positive inputs through.
func ReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// LeakyReLU returns a ReLU variant that scales negative inputs by alpha.
func LeakyReLU(alpha float64) Func {
	return func(x float64) float64 {
		if x > 0 {
			return x
		}
		return alpha * x
	}
}

// Softplus is the smooth approximation of ReLU.
func Softplus(x float64) float64 {
	if x > 30 {
		return x
	}
	return math.Log1p(math.Exp(x))
}

// Point is one sampled (x, y) pair of an activation curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Grid samples fn at n evenly spaced points across [lo, hi], endpoints
// included. The resulting table is what external plotting consumes.
// A non-positive n yields no points.
func Grid(fn Func, lo, hi float64, n int) []Point {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Point{{X: lo, Y: fn(lo)}}
	}

	points := make([]Point, n)
	step := (hi - lo) / float64(n-1)
	for i := range points {
		x := lo + float64(i)*step
		points[i] = Point{X: x, Y: fn(x)}
	}
	return points
}
