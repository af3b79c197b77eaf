// Package lowering translates pkg/ir's Intermediate representation into
// dag nodes: one Value per entity (the adjustable primitives) and one
// Value per variable (everything derived from them), following the closed
// forms fixed by the IR's own specification.
package lowering

import (
	"github.com/geo-aid/geoaid/pkg/dag"
	"github.com/geo-aid/geoaid/pkg/ir"
	"github.com/geo-aid/geoaid/pkg/value"
)

// Lowered holds everything the rest of the system needs after lowering: the
// arena every node lives in, the per-entity adjustable values (consumed
// directly by entities, and indirectly by variables via Entity{id}), and
// the per-variable values in traversal order.
type Lowered struct {
	Arena       *dag.Arena
	Adjustables []value.Value
	Variables   []value.Value
}

// Lower builds the adjustable value for every entity (consuming inputs in
// entity order) and then the value of every variable, in the order given.
// variables must be pre-ordered so that every reference resolves to an
// already-lowered variable, per the IR's own invariant.
func Lower(arena *dag.Arena, entities []ir.Entity, variables []ir.Expr) *Lowered {
	adjustables := make([]value.Value, len(entities))
	idx := 0
	for i, e := range entities {
		switch e.Tag {
		case ir.FreePoint:
			adjustables[i] = value.FromComplex(value.Complex{
				Real: arena.Input(idx),
				Imag: arena.Input(idx + 1),
			})
			idx += 2
		default:
			adjustables[i] = value.Scalar(arena.Input(idx))
			idx++
		}
	}

	l := &lowerer{arena: arena, entities: entities, adjustables: adjustables, variables: make([]value.Value, len(variables))}
	for i, expr := range variables {
		l.variables[i] = l.compile(expr)
	}

	return &Lowered{Arena: arena, Adjustables: adjustables, Variables: l.variables}
}

type lowerer struct {
	arena       *dag.Arena
	entities    []ir.Entity
	adjustables []value.Value
	variables   []value.Value
}

func (l *lowerer) v(i ir.VarIndex) value.Value { return l.variables[i] }
func (l *lowerer) c(i ir.VarIndex) value.Complex { return l.v(i).ToComplex() }
