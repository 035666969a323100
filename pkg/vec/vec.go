// Package vec provides the small 3-vector and flat-buffer reshaping
// helpers used by the scene wrappers.
package vec

import (
	"fmt"
	"math"
)

// V3 is a 3-component vector: a position in meters or a set of Euler
// angles in radians.
type V3 [3]float64

// Round rounds a value to prec decimal digits. A negative prec leaves
// the value untouched.
func Round(v float64, prec int) float64 {
	if prec < 0 {
		return v
	}
	p := math.Pow(10, float64(prec))
	return math.Round(v*p) / p
}

// Round rounds every component to prec decimal digits. A negative prec
// returns the vector unchanged.
func (v V3) Round(prec int) V3 {
	if prec < 0 {
		return v
	}
	return V3{
		Round(v[0], prec),
		Round(v[1], prec),
		Round(v[2], prec),
	}
}

// Chunk3 reshapes a flat buffer of consecutive triplets into vectors.
func Chunk3(flat []float64) ([]V3, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("flat buffer length %d is not a multiple of 3", len(flat))
	}
	out := make([]V3, 0, len(flat)/3)
	for i := 0; i < len(flat); i += 3 {
		out = append(out, V3{flat[i], flat[i+1], flat[i+2]})
	}
	return out, nil
}

// RoundAll rounds every vector to prec decimal digits.
func RoundAll(vs []V3, prec int) []V3 {
	if prec < 0 {
		return vs
	}
	out := make([]V3, len(vs))
	for i, v := range vs {
		out[i] = v.Round(prec)
	}
	return out
}

// InEulerRange reports whether an Euler angle lies in (-pi, pi].
func InEulerRange(a float64) bool {
	return a > -math.Pi && a <= math.Pi
}
