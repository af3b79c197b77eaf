package compiler

import "github.com/geo-aid/geoaid/pkg/dag"

// Gradient builds, by reverse-mode automatic differentiation, one new node
// per free input holding the symbolic partial derivative of output with
// respect to that input. The derivative nodes are appended to arena; no
// existing node is touched.
//
// Because an Arena's node IDs are already in topological (creation) order,
// a single decreasing pass from output down to the first node is a valid
// reverse topological walk: every node is visited after everything that
// depends on it and before everything it depends on.
func Gradient(arena *dag.Arena, output dag.NodeID) []dag.NodeID {
	n := arena.Len()
	adjoint := make([]dag.NodeID, n+1)
	adjoint[output] = arena.One()

	contribute := func(id, delta dag.NodeID) {
		if id == 0 {
			return
		}
		if adjoint[id] == 0 {
			adjoint[id] = delta
		} else {
			adjoint[id] = arena.Add(adjoint[id], delta)
		}
	}

	for id := output; id >= 1; id-- {
		grad := adjoint[id]
		if grad == 0 {
			continue
		}
		node := arena.Node(id)
		switch node.Kind {
		case dag.KindConst, dag.KindInput:
			// leaves contribute nothing further

		case dag.KindAdd:
			contribute(node.A, grad)
			contribute(node.B, grad)

		case dag.KindSub:
			contribute(node.A, grad)
			contribute(node.B, arena.Neg(grad))

		case dag.KindMul:
			contribute(node.A, arena.Mul(grad, node.B))
			contribute(node.B, arena.Mul(grad, node.A))

		case dag.KindDiv:
			contribute(node.A, arena.Div(grad, node.B))
			num := arena.Neg(arena.Mul(grad, node.A))
			denom := arena.Mul(node.B, node.B)
			contribute(node.B, arena.Div(num, denom))

		case dag.KindNeg:
			contribute(node.A, arena.Neg(grad))

		case dag.KindAbs:
			cond := arena.Compare(node.A, arena.Zero(), dag.CompareGt)
			sign := arena.Ternary(cond, arena.One(), arena.Const(-1))
			contribute(node.A, arena.Mul(grad, sign))

		case dag.KindSin:
			contribute(node.A, arena.Mul(grad, arena.Cos(node.A)))

		case dag.KindCos:
			contribute(node.A, arena.Neg(arena.Mul(grad, arena.Sin(node.A))))

		case dag.KindExp:
			// the node's own value is exp(a); reuse it instead of recomputing
			contribute(node.A, arena.Mul(grad, id))

		case dag.KindLog:
			contribute(node.A, arena.Div(grad, node.A))

		case dag.KindAcos:
			aa := arena.Mul(node.A, node.A)
			oneMinus := arena.Sub(arena.One(), aa)
			root := arena.Pow(oneMinus, 0.5)
			contribute(node.A, arena.Neg(arena.Div(grad, root)))

		case dag.KindAtan2:
			y, x := node.A, node.B
			denom := arena.Add(arena.Mul(x, x), arena.Mul(y, y))
			dy := arena.Div(x, denom)
			dx := arena.Neg(arena.Div(y, denom))
			contribute(y, arena.Mul(grad, dy))
			contribute(x, arena.Mul(grad, dx))

		case dag.KindPow:
			coef := arena.Const(node.Exponent)
			deriv := arena.Mul(coef, arena.Pow(node.A, node.Exponent-1))
			contribute(node.A, arena.Mul(grad, deriv))

		case dag.KindMin:
			aLessB := arena.Compare(node.A, node.B, dag.CompareLt)
			contribute(node.A, arena.Mul(grad, arena.Ternary(aLessB, arena.One(), arena.Zero())))
			contribute(node.B, arena.Mul(grad, arena.Ternary(aLessB, arena.Zero(), arena.One())))

		case dag.KindCompare:
			// boolean-valued and piecewise constant; no gradient flows through it

		case dag.KindTernary:
			contribute(node.B, arena.Ternary(node.A, grad, arena.Zero()))
			contribute(node.C, arena.Ternary(node.A, arena.Zero(), grad))

		default:
			panic("compiler: unhandled node kind in gradient")
		}
	}

	result := make([]dag.NodeID, arena.InputCount())
	for i := range result {
		id := arena.Input(i)
		if int(id) <= n && adjoint[id] != 0 {
			result[i] = adjoint[id]
		} else {
			result[i] = arena.Zero()
		}
	}
	return result
}
