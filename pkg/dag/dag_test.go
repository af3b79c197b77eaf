package dag_test

import (
	"testing"

	"github.com/geo-aid/geoaid/pkg/dag"
	"pgregory.net/rapid"
)

func TestArena_InterningReturnsSameHandle(t *testing.T) {
	a := dag.NewArena(2)
	x := a.Input(0)
	y := a.Input(1)

	if a.Add(x, y) != a.Add(x, y) {
		t.Fatal("two structurally identical Add nodes got different handles")
	}
	if a.Const(1.5) != a.Const(1.5) {
		t.Fatal("two Const(1.5) nodes got different handles")
	}
	if a.Const(0) != a.Zero() {
		t.Fatal("Const(0) should be the same handle as Zero()")
	}
	if a.Const(1) != a.One() {
		t.Fatal("Const(1) should be the same handle as One()")
	}
	if a.Add(x, y) == a.Add(y, x) {
		t.Fatal("Add(x,y) and Add(y,x) are operand-order distinct and must not share a handle")
	}
	if a.Ternary(x, y, x) != a.Ternary(x, y, x) {
		t.Fatal("two structurally identical Ternary nodes got different handles")
	}
}

func TestArena_InputOutOfRangePanics(t *testing.T) {
	a := dag.NewArena(1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range input index")
		}
	}()
	a.Input(1)
}

// TestArena_InterningProperty exercises Testable Property 1: for every pair
// of nodes built from the same kind and operands, the arena returns the same
// handle, regardless of how many other nodes were interned in between.
func TestArena_InterningProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := dag.NewArena(3)
		inputs := []dag.NodeID{a.Input(0), a.Input(1), a.Input(2)}

		i := rapid.IntRange(0, 2).Draw(t, "i")
		j := rapid.IntRange(0, 2).Draw(t, "j")
		first := a.Add(inputs[i], inputs[j])

		// Build a pile of unrelated nodes in between.
		noise := rapid.IntRange(0, 20).Draw(t, "noise")
		for k := 0; k < noise; k++ {
			a.Mul(inputs[k%3], a.Const(float64(k)))
		}

		second := a.Add(inputs[i], inputs[j])
		if first != second {
			t.Fatalf("Add(%d,%d) handle changed after interleaved construction: %v != %v", i, j, first, second)
		}
	})
}
