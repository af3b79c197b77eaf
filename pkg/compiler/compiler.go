// Package compiler turns a dag.Arena into runnable programs: a
// straight-line evaluator with dead-code elimination, and a reverse-mode
// gradient builder that emits symbolic derivative nodes back into the same
// arena.
package compiler

import "github.com/geo-aid/geoaid/pkg/dag"

// instruction is one slot of a compiled straight-line program. It mirrors a
// dag.Node but with operands rewritten to slot indices instead of NodeIDs,
// so Evaluate never has to touch the arena.
type instruction struct {
	kind     dag.NodeKind
	a, b, c  int
	constant float64
	input    int
	exponent float64
	cmp      dag.CompareKind
}

// Program is a compiled, dead-code-eliminated evaluator for a fixed set of
// output nodes from one arena.
type Program struct {
	instructions []instruction
	outputs      []int
	inputCount   int
}

// Compile performs reachability-based dead-code elimination from outputs and
// lowers the surviving nodes into a compact slot-indexed instruction list.
// Because node IDs in an Arena are already in topological order, a single
// decreasing pass over reachable IDs is enough to mark live nodes, and a
// single increasing pass builds the slot-compacted program.
func Compile(arena *dag.Arena, outputs []dag.NodeID) *Program {
	n := arena.Len()
	live := make([]bool, n+1)
	for _, out := range outputs {
		live[out] = true
	}
	for id := dag.NodeID(n); id >= 1; id-- {
		if !live[id] {
			continue
		}
		node := arena.Node(id)
		markOperands(node, live)
	}

	slot := make([]int, n+1)
	instructions := make([]instruction, 0, n)
	for id := dag.NodeID(1); int(id) <= n; id++ {
		if !live[id] {
			continue
		}
		node := arena.Node(id)
		instructions = append(instructions, instruction{
			kind:     node.Kind,
			a:        slot[node.A],
			b:        slot[node.B],
			c:        slot[node.C],
			constant: node.Const,
			input:    node.Input,
			exponent: node.Exponent,
			cmp:      node.Cmp,
		})
		slot[id] = len(instructions) - 1
	}

	outSlots := make([]int, len(outputs))
	for i, out := range outputs {
		outSlots[i] = slot[out]
	}

	return &Program{instructions: instructions, outputs: outSlots, inputCount: arena.InputCount()}
}

func markOperands(node dag.Node, live []bool) {
	switch node.Kind {
	case dag.KindConst, dag.KindInput:
		return
	case dag.KindNeg, dag.KindAbs, dag.KindSin, dag.KindCos, dag.KindExp, dag.KindLog, dag.KindAcos, dag.KindPow:
		live[node.A] = true
	case dag.KindTernary:
		live[node.A] = true
		live[node.B] = true
		live[node.C] = true
	default:
		live[node.A] = true
		live[node.B] = true
	}
}

// InputCount returns the number of free scalar inputs this program expects.
func (p *Program) InputCount() int { return p.inputCount }

// OutputCount returns the number of output values Evaluate writes.
func (p *Program) OutputCount() int { return len(p.outputs) }

// Evaluate runs the program on inputs and writes one value per output node
// into out. len(inputs) must equal InputCount() and len(out) must equal
// OutputCount().
func (p *Program) Evaluate(inputs, out []float64) {
	scratch := make([]float64, len(p.instructions))
	for i, ins := range p.instructions {
		scratch[i] = ins.eval(scratch, inputs)
	}
	for i, slot := range p.outputs {
		out[i] = scratch[slot]
	}
}
