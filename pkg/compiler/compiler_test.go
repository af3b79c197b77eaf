package compiler_test

import (
	"math"
	"testing"

	"github.com/geo-aid/geoaid/pkg/compiler"
	"github.com/geo-aid/geoaid/pkg/dag"
)

func TestCompile_BasicArithmetic(t *testing.T) {
	arena := dag.NewArena(2)
	x := arena.Input(0)
	y := arena.Input(1)
	sum := arena.Add(x, y)
	prod := arena.Mul(x, y)

	prog := compiler.Compile(arena, []dag.NodeID{sum, prod})
	out := make([]float64, 2)
	prog.Evaluate([]float64{3, 4}, out)

	if out[0] != 7 {
		t.Fatalf("sum = %v, want 7", out[0])
	}
	if out[1] != 12 {
		t.Fatalf("product = %v, want 12", out[1])
	}
}

func TestCompile_DeadCodeEliminated(t *testing.T) {
	arena := dag.NewArena(1)
	x := arena.Input(0)
	used := arena.Mul(x, x)
	_ = arena.Sin(x) // never referenced as an output or operand

	prog := compiler.Compile(arena, []dag.NodeID{used})
	out := make([]float64, 1)
	prog.Evaluate([]float64{5}, out)
	if out[0] != 25 {
		t.Fatalf("x*x = %v, want 25", out[0])
	}
}

func TestGradient_Polynomial(t *testing.T) {
	// f(x) = x^3, f'(x) = 3x^2
	arena := dag.NewArena(1)
	x := arena.Input(0)
	f := arena.Pow(x, 3)

	grads := compiler.Gradient(arena, f)
	prog := compiler.Compile(arena, grads)
	out := make([]float64, 1)
	prog.Evaluate([]float64{2}, out)

	want := 3 * 2 * 2.0
	if math.Abs(out[0]-want) > 1e-9 {
		t.Fatalf("df/dx = %v, want %v", out[0], want)
	}
}

func TestGradient_TernarySelectsBranch(t *testing.T) {
	// f(a,b) = a > 0 ? b*b : b, so df/db is 2b when a>0 else 1
	arena := dag.NewArena(2)
	a := arena.Input(0)
	b := arena.Input(1)
	cond := arena.Compare(a, arena.Zero(), dag.CompareGt)
	f := arena.Ternary(cond, arena.Mul(b, b), b)

	grads := compiler.Gradient(arena, f)
	prog := compiler.Compile(arena, grads)
	out := make([]float64, 2)

	prog.Evaluate([]float64{1, 5}, out)
	if math.Abs(out[1]-10) > 1e-9 {
		t.Fatalf("df/db (a>0) = %v, want 10", out[1])
	}

	prog.Evaluate([]float64{-1, 5}, out)
	if math.Abs(out[1]-1) > 1e-9 {
		t.Fatalf("df/db (a<=0) = %v, want 1", out[1])
	}
}

func TestCheckGradient_TrigCombination(t *testing.T) {
	arena := dag.NewArena(2)
	x := arena.Input(0)
	y := arena.Input(1)
	f := arena.Add(arena.Mul(arena.Sin(x), arena.Cos(y)), arena.Pow(x, 2))

	if err := compiler.CheckGradient(arena, f, []float64{0.7, -1.3}, 1e-6, 1e-4); err != nil {
		t.Fatalf("gradient check failed: %v", err)
	}
}
