// Package dag implements the shared expression arena that every Geo-AID
// figure is compiled into: a flat, append-only list of scalar nodes where
// each node's operands are handles created earlier in the same arena.
//
// The arena never mutates or removes a node once created, and structurally
// identical nodes (same kind, same operands, same constant) are interned to
// the same handle. Because operands always precede the node that references
// them, a node's own creation order already is a topological order: callers
// that need to walk the graph (the straight-line compiler, the reverse-mode
// gradient builder) can iterate NodeIDs directly instead of sorting.
package dag

import "fmt"

// NodeID is a stable handle into an Arena. The zero value never refers to a
// real node; valid handles start at 1.
type NodeID uint32

// CompareKind selects the comparison performed by a Compare node.
type CompareKind uint8

const (
	CompareGt CompareKind = iota
	CompareLt
	CompareEq
)

// NodeKind tags the operation a Node performs.
type NodeKind uint8

const (
	KindConst NodeKind = iota
	KindInput
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindNeg
	KindAbs
	KindSin
	KindCos
	KindExp
	KindLog
	KindAcos
	KindAtan2
	KindPow
	KindMin
	KindCompare
	KindTernary
)

// Node is one immutable entry in an Arena. Which fields are meaningful
// depends on Kind: binary ops use A and B, Ternary uses A (condition), B
// (then-branch) and C (else-branch), Const uses Const, Input uses Input,
// Pow uses A and Exponent, Compare uses A, B and Cmp.
type Node struct {
	Kind     NodeKind
	A, B, C  NodeID
	Const    float64
	Input    int
	Exponent float64
	Cmp      CompareKind
}

// Arena owns every node created during the compilation of one figure.
type Arena struct {
	nodes      []Node
	inputCount int
	intern     map[internKey]NodeID
	zero       NodeID
	one        NodeID
}

type internKey struct {
	kind     NodeKind
	a, b, c  NodeID
	input    int
	exponent float64
	cmp      CompareKind
	bits     uint64
}

// NewArena returns an empty arena. inputCount is the number of free scalar
// inputs the compiled program will accept; it must equal the total input
// width consumed by every Input node created in this arena.
func NewArena(inputCount int) *Arena {
	a := &Arena{
		inputCount: inputCount,
		intern:     make(map[internKey]NodeID),
	}
	a.zero = a.Const(0)
	a.one = a.Const(1)
	return a
}

// InputCount returns the number of scalar inputs this arena was built for.
func (a *Arena) InputCount() int { return a.inputCount }

// Len returns the number of nodes created so far; valid NodeIDs are 1..Len().
func (a *Arena) Len() int { return len(a.nodes) }

// Node returns the node stored at id. It panics if id is not a valid handle.
func (a *Arena) Node(id NodeID) Node {
	if id == 0 || int(id) > len(a.nodes) {
		panic(fmt.Sprintf("dag: invalid NodeID %d", id))
	}
	return a.nodes[id-1]
}

func (a *Arena) push(n Node, key internKey) NodeID {
	if id, ok := a.intern[key]; ok {
		return id
	}
	a.nodes = append(a.nodes, n)
	id := NodeID(len(a.nodes))
	a.intern[key] = id
	return id
}

// Zero returns the interned constant 0 node.
func (a *Arena) Zero() NodeID { return a.zero }

// One returns the interned constant 1 node.
func (a *Arena) One() NodeID { return a.one }

// Const returns (creating if necessary) a node holding the constant value v.
func (a *Arena) Const(v float64) NodeID {
	key := internKey{kind: KindConst, bits: floatBits(v)}
	return a.push(Node{Kind: KindConst, Const: v}, key)
}

// Input returns (creating if necessary) a node reading free input index idx.
// idx must be in [0, InputCount).
func (a *Arena) Input(idx int) NodeID {
	if idx < 0 || idx >= a.inputCount {
		panic(fmt.Sprintf("dag: input index %d out of range [0,%d)", idx, a.inputCount))
	}
	key := internKey{kind: KindInput, input: idx}
	return a.push(Node{Kind: KindInput, Input: idx}, key)
}

func (a *Arena) binary(kind NodeKind, x, y NodeID) NodeID {
	key := internKey{kind: kind, a: x, b: y}
	return a.push(Node{Kind: kind, A: x, B: y}, key)
}

func (a *Arena) unary(kind NodeKind, x NodeID) NodeID {
	key := internKey{kind: kind, a: x}
	return a.push(Node{Kind: kind, A: x}, key)
}

func (a *Arena) Add(x, y NodeID) NodeID { return a.binary(KindAdd, x, y) }
func (a *Arena) Sub(x, y NodeID) NodeID { return a.binary(KindSub, x, y) }
func (a *Arena) Mul(x, y NodeID) NodeID { return a.binary(KindMul, x, y) }
func (a *Arena) Div(x, y NodeID) NodeID { return a.binary(KindDiv, x, y) }
func (a *Arena) Neg(x NodeID) NodeID    { return a.unary(KindNeg, x) }
func (a *Arena) Abs(x NodeID) NodeID    { return a.unary(KindAbs, x) }
func (a *Arena) Sin(x NodeID) NodeID    { return a.unary(KindSin, x) }
func (a *Arena) Cos(x NodeID) NodeID    { return a.unary(KindCos, x) }
func (a *Arena) Exp(x NodeID) NodeID    { return a.unary(KindExp, x) }
func (a *Arena) Log(x NodeID) NodeID    { return a.unary(KindLog, x) }
func (a *Arena) Acos(x NodeID) NodeID   { return a.unary(KindAcos, x) }
func (a *Arena) Min(x, y NodeID) NodeID { return a.binary(KindMin, x, y) }

// Atan2 returns atan2(y, x), matching math.Atan2's argument order.
func (a *Arena) Atan2(y, x NodeID) NodeID { return a.binary(KindAtan2, y, x) }

// Pow returns x raised to the fixed real exponent p. The exponent is baked
// into the node (and its interning key) rather than carried as an operand,
// since every use in this system raises to a compile-time-known power.
func (a *Arena) Pow(x NodeID, p float64) NodeID {
	key := internKey{kind: KindPow, a: x, bits: floatBits(p)}
	return a.push(Node{Kind: KindPow, A: x, Exponent: p}, key)
}

// Compare returns a boolean-valued node (1 or 0) for x `cmp` y.
func (a *Arena) Compare(x, y NodeID, cmp CompareKind) NodeID {
	key := internKey{kind: KindCompare, a: x, b: y, cmp: cmp}
	return a.push(Node{Kind: KindCompare, A: x, B: y, Cmp: cmp}, key)
}

// Ternary returns then if cond is non-zero, otherwise els.
func (a *Arena) Ternary(cond, then, els NodeID) NodeID {
	key := internKey{kind: KindTernary, a: cond, b: then, c: els}
	return a.push(Node{Kind: KindTernary, A: cond, B: then, C: els}, key)
}
