package glide_test

import (
	"context"
	"math"
	"testing"

	"github.com/geo-aid/geoaid/pkg/dag"
	"github.com/geo-aid/geoaid/pkg/glide"
)

func TestParams_ValidateRejectsBadConfig(t *testing.T) {
	cases := []glide.Params{
		{Strictness: 2, Samples: 0, WorkerCount: 1, MeanCount: 1, MaxMeanDelta: 0.01},
		{Strictness: 2, Samples: 1, WorkerCount: 0, MeanCount: 1, MaxMeanDelta: 0.01},
		{Strictness: 0, Samples: 1, WorkerCount: 1, MeanCount: 1, MaxMeanDelta: 0.01},
	}
	for i, p := range cases {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error, got nil", i)
		}
	}
}

func TestGlide_FindsMinimumOfSimpleQuadratic(t *testing.T) {
	// One free real entity x with error (x-3)^2: the unique zero is x=3.
	arena := dag.NewArena(1)
	x := arena.Input(0)
	target := arena.Const(3)
	diff := arena.Sub(x, target)
	entityError := arena.Mul(diff, diff)

	params := glide.Params{Strictness: 2, Samples: 8, WorkerCount: 4, MeanCount: 5, MaxMeanDelta: 1e-7}
	g, err := glide.New(params, arena, []dag.NodeID{entityError}, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result := g.Generate(context.Background(), nil)
	if math.Abs(result.Inputs[0]-3) > 1e-2 {
		t.Fatalf("x = %v, want close to 3 (quality %v)", result.Inputs[0], result.Quality)
	}
	if result.Quality <= 0 {
		t.Fatalf("quality = %v, want > 0", result.Quality)
	}
}

func TestGlide_WorkerCountInvariance(t *testing.T) {
	build := func(workers int) []float64 {
		arena := dag.NewArena(1)
		x := arena.Input(0)
		target := arena.Const(3)
		diff := arena.Sub(x, target)
		entityError := arena.Mul(diff, diff)

		params := glide.Params{Strictness: 2, Samples: 6, WorkerCount: workers, MeanCount: 5, MaxMeanDelta: 1e-7}
		g, err := glide.New(params, arena, []dag.NodeID{entityError}, 7)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		var qualities []float64
		g.Generate(context.Background(), func(_, _ int, best float64) {
			qualities = append(qualities, best)
		})
		return qualities
	}

	single := build(1)
	multi := build(3)
	if len(single) == 0 || len(multi) == 0 {
		t.Fatalf("expected progress callbacks to fire")
	}
	finalSingle := single[len(single)-1]
	finalMulti := multi[len(multi)-1]
	if math.Abs(finalSingle-finalMulti) > 1e-9 {
		t.Fatalf("best quality differs by worker count: worker=1 -> %v, worker=3 -> %v", finalSingle, finalMulti)
	}
}
