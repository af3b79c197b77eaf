package glide

import (
	"math"

	"github.com/geo-aid/geoaid/pkg/compiler"
)

// generateContext is one worker's private scratch state for a single
// sample: a sample vector, its gradient, the previous gradient (used to
// detect overshoot via a sign reversal), a candidate-step buffer, and a
// sliding quality window. Each worker owns exactly one of these and no
// state is ever shared between workers.
type generateContext struct {
	sample           []float64
	gradient         []float64
	previousGradient []float64
	candidate        []float64
	window           *qualityWindow
}

func newGenerateContext(n, meanCount int, maxMeanDelta float64) *generateContext {
	return &generateContext{
		sample:           make([]float64, n),
		gradient:         make([]float64, n),
		previousGradient: make([]float64, n),
		candidate:        make([]float64, n),
		window:           newQualityWindow(meanCount, maxMeanDelta),
	}
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// descend runs local gradient descent on ctx.sample in place, using errFn to
// evaluate the aggregate error and gradFn to evaluate its gradient, and
// returns the final quality exp(-error).
//
// A candidate step producing a non-finite error compares as "not better"
// automatically (Go's < is always false against NaN), so numerical hazards
// propagating from the DAG are absorbed as ordinary failed steps: speed
// shrinks and the loop keeps trying smaller steps or gives up once speed
// collapses below speedLimit.
func descend(errFn, gradFn *compiler.Program, ctx *generateContext) float64 {
	speed := initialSpeed

	var errOut, candErrOut [1]float64
	errFn.Evaluate(ctx.sample, errOut[:])
	gradFn.Evaluate(ctx.sample, ctx.gradient)
	copy(ctx.previousGradient, ctx.gradient)
	ctx.window.clear()
	copy(ctx.candidate, ctx.sample)

	for {
		for speed > speedLimit {
			for i := range ctx.candidate {
				ctx.candidate[i] = ctx.sample[i] - speed*ctx.gradient[i]
			}
			errFn.Evaluate(ctx.candidate, candErrOut[:])

			if candErrOut[0] < errOut[0] {
				if dot(ctx.gradient, ctx.previousGradient) < dotThreshold {
					speed /= 1.5
				}
				copy(ctx.sample, ctx.candidate)
				errOut[0] = candErrOut[0]
				speed *= 1.1
				break
			}

			copy(ctx.candidate, ctx.sample)
			speed /= 1.5
		}

		quality := math.Exp(-errOut[0])
		if ctx.window.record(quality) || speed <= speedLimit {
			return quality
		}

		copy(ctx.previousGradient, ctx.gradient)
		gradFn.Evaluate(ctx.sample, ctx.gradient)
	}
}
