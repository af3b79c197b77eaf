package glide

import (
	"context"
	"math"
	"sync"

	"github.com/geo-aid/geoaid/pkg/compiler"
	"github.com/geo-aid/geoaid/pkg/dag"
	"github.com/geo-aid/geoaid/pkg/rng"
)

// ProgressFunc is invoked once per completed sample, after the best-of
// reduction has considered it. completed counts how many samples have
// finished so far (including this one); bestQuality is the best quality
// seen across all samples so far.
type ProgressFunc func(completed, total int, bestQuality float64)

// Result is the outcome of a Glide search: the best input vector found and
// the quality it achieved.
type Result struct {
	Inputs  []float64
	Quality float64
}

// Glide holds a compiled aggregate error surface ready to be searched.
type Glide struct {
	params     Params
	errorFn    *compiler.Program
	gradientFn *compiler.Program
	inputCount int
	masterSeed uint64
}

// New compiles the aggregate power-mean error over entityErrors and returns
// a ready-to-run Glide. The arena must already contain entityErrors and
// every node they depend on; New appends the aggregate and gradient nodes
// to it.
func New(params Params, arena *dag.Arena, entityErrors []dag.NodeID, masterSeed uint64) (*Glide, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	total := AggregateError(arena, entityErrors, params.Strictness)
	errorFn := compiler.Compile(arena, []dag.NodeID{total})
	gradNodes := compiler.Gradient(arena, total)
	gradientFn := compiler.Compile(arena, gradNodes)

	return &Glide{
		params:     params,
		errorFn:    errorFn,
		gradientFn: gradientFn,
		inputCount: arena.InputCount(),
		masterSeed: masterSeed,
	}, nil
}

// AggregateError builds E_total = ((1/N) * Σ E_i^s)^(1/s), the power-mean of
// the per-entity errors.
func AggregateError(arena *dag.Arena, entityErrors []dag.NodeID, strictness float64) dag.NodeID {
	n := arena.Const(float64(len(entityErrors)))
	sum := arena.Zero()
	for _, e := range entityErrors {
		sum = arena.Add(sum, arena.Pow(e, strictness))
	}
	mean := arena.Div(sum, n)
	return arena.Pow(mean, 1/strictness)
}

// Generate runs params.Samples independent descents across params.WorkerCount
// goroutines and returns the best result found. ctx can be used to stop
// dispatching new samples early; samples already in flight always run to
// completion. progress, if non-nil, is called once per completed sample.
func (g *Glide) Generate(ctx context.Context, progress ProgressFunc) Result {
	type job struct{ index int }
	type outcome struct {
		sample  []float64
		quality float64
	}

	jobs := make(chan job)
	results := make(chan outcome, g.params.WorkerCount)

	var wg sync.WaitGroup
	for w := 0; w < g.params.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dctx := newGenerateContext(g.inputCount, g.params.MeanCount, g.params.MaxMeanDelta)
			for j := range jobs {
				sampleRNG := rng.New(g.masterSeed, "glide-sample", j.index)
				for i := range dctx.sample {
					dctx.sample[i] = sampleRNG.Float64Range(sampleLow, sampleHigh)
				}
				quality := descend(g.errorFn, g.gradientFn, dctx)
				results <- outcome{sample: append([]float64(nil), dctx.sample...), quality: quality}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < g.params.Samples; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	best := Result{Inputs: make([]float64, g.inputCount), Quality: 0}
	completed := 0
	for o := range results {
		completed++
		if !math.IsNaN(o.quality) && o.quality > best.Quality {
			best = Result{Inputs: o.sample, Quality: o.quality}
		}
		if progress != nil {
			progress(completed, g.params.Samples, best.Quality)
		}
	}
	return best
}
