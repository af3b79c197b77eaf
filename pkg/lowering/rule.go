package lowering

import (
	"github.com/geo-aid/geoaid/pkg/dag"
	"github.com/geo-aid/geoaid/pkg/ir"
	"github.com/geo-aid/geoaid/pkg/value"
)

// ruleCompiler lowers rule kinds against an already-lowered variable list.
type ruleCompiler struct {
	arena     *dag.Arena
	variables []value.Value
}

// CompileRule lowers one weighted rule to a single error node: its kind's
// error function, multiplied by its weight.
func CompileRule(arena *dag.Arena, variables []value.Value, rule ir.Rule) dag.NodeID {
	rc := &ruleCompiler{arena: arena, variables: variables}
	err := rc.compileKind(rule.Kind)
	return arena.Mul(err, arena.Const(rule.Weight))
}

func (rc *ruleCompiler) complexAt(i ir.VarIndex) value.Complex {
	return rc.variables[i].ToComplex()
}

func (rc *ruleCompiler) compileKind(k ir.RuleKind) dag.NodeID {
	a := rc.arena
	switch k.Tag {
	case ir.PointEq, ir.NumberEq:
		// 5 * |a-b| (complex magnitude), so point and scalar equalities
		// share the same Euclidean penalty.
		diff := rc.complexAt(k.A).Sub(a, rc.complexAt(k.B))
		return a.Mul(diff.Modulus(a), a.Const(5))

	case ir.Gt:
		return rc.gt(k.A, k.B)

	case ir.Alternative:
		if len(k.Alternatives) == 0 {
			return a.Zero()
		}
		best := rc.compileKind(k.Alternatives[0])
		for _, alt := range k.Alternatives[1:] {
			best = a.Min(best, rc.compileKind(alt))
		}
		return best

	case ir.Invert:
		inner := rc.compileKind(*k.Inner)
		ten := a.Const(10)
		return a.Div(a.One(), a.Mul(ten, inner))

	case ir.Bias:
		return a.Zero()

	default:
		panic("lowering: unhandled rule tag")
	}
}

// gt implements Gt(a,b): off = 0.1*(|b|+0.1), th = b+off; penalty is
// (a-th)^2 when th > a (the inequality is violated), else 0. The comparison
// creates a dead band around the boundary so satisfied inequalities stop
// contributing gradient once clear of it.
func (rc *ruleCompiler) gt(aIdx, bIdx ir.VarIndex) dag.NodeID {
	a := rc.arena
	aVal := rc.complexAt(aIdx).Real
	bVal := rc.complexAt(bIdx).Real

	tenth := a.Const(0.1)
	offset := a.Mul(a.Add(a.Abs(bVal), tenth), tenth)
	threshold := a.Add(bVal, offset)

	diff := a.Sub(aVal, threshold)
	penalty := a.Mul(diff, diff)

	violated := a.Compare(threshold, aVal, dag.CompareGt)
	return a.Ternary(violated, penalty, a.Zero())
}

// EntityErrors sums, per entity, the error of every rule that depends on
// it.
func EntityErrors(arena *dag.Arena, rules []ir.Rule, variables []value.Value, entityCount int) []dag.NodeID {
	errs := make([]dag.NodeID, entityCount)
	for i := range errs {
		errs[i] = arena.Zero()
	}
	for _, rule := range rules {
		err := CompileRule(arena, variables, rule)
		for _, e := range rule.Entities {
			errs[e] = arena.Add(errs[e], err)
		}
	}
	return errs
}
