package compiler

import (
	"fmt"
	"math"

	"github.com/geo-aid/geoaid/pkg/dag"
)

// CheckGradient verifies, by central finite differences, that Gradient's
// symbolic derivatives agree with the numeric slope of output at x. eps is
// the finite-difference step and tol the allowed relative error per input.
// It returns nil when every input passes, or an error naming the first
// input that didn't.
func CheckGradient(arena *dag.Arena, output dag.NodeID, x []float64, eps, tol float64) error {
	valueFn := Compile(arena, []dag.NodeID{output})
	gradNodes := Gradient(arena, output)
	gradFn := Compile(arena, gradNodes)

	analytic := make([]float64, len(x))
	gradFn.Evaluate(x, analytic)

	var out [1]float64
	probe := make([]float64, len(x))
	for i := range x {
		copy(probe, x)
		probe[i] = x[i] + eps
		valueFn.Evaluate(probe, out[:])
		hi := out[0]

		probe[i] = x[i] - eps
		valueFn.Evaluate(probe, out[:])
		lo := out[0]

		numeric := (hi - lo) / (2 * eps)

		absErr := math.Abs(analytic[i] - numeric)
		scale := math.Max(1.0, math.Max(math.Abs(analytic[i]), math.Abs(numeric)))
		if absErr/scale > tol {
			return fmt.Errorf("compiler: gradient mismatch at input %d: analytic=%g numeric=%g", i, analytic[i], numeric)
		}
	}
	return nil
}
