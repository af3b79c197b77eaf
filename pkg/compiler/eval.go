package compiler

import (
	"math"

	"github.com/geo-aid/geoaid/pkg/dag"
)

func (ins instruction) eval(scratch, inputs []float64) float64 {
	switch ins.kind {
	case dag.KindConst:
		return ins.constant
	case dag.KindInput:
		return inputs[ins.input]
	case dag.KindAdd:
		return scratch[ins.a] + scratch[ins.b]
	case dag.KindSub:
		return scratch[ins.a] - scratch[ins.b]
	case dag.KindMul:
		return scratch[ins.a] * scratch[ins.b]
	case dag.KindDiv:
		return scratch[ins.a] / scratch[ins.b]
	case dag.KindNeg:
		return -scratch[ins.a]
	case dag.KindAbs:
		return math.Abs(scratch[ins.a])
	case dag.KindSin:
		return math.Sin(scratch[ins.a])
	case dag.KindCos:
		return math.Cos(scratch[ins.a])
	case dag.KindExp:
		return math.Exp(scratch[ins.a])
	case dag.KindLog:
		return math.Log(scratch[ins.a])
	case dag.KindAcos:
		return math.Acos(scratch[ins.a])
	case dag.KindAtan2:
		return math.Atan2(scratch[ins.a], scratch[ins.b])
	case dag.KindPow:
		return math.Pow(scratch[ins.a], ins.exponent)
	case dag.KindMin:
		return math.Min(scratch[ins.a], scratch[ins.b])
	case dag.KindCompare:
		return compare(scratch[ins.a], scratch[ins.b], ins.cmp)
	case dag.KindTernary:
		if scratch[ins.a] != 0 {
			return scratch[ins.b]
		}
		return scratch[ins.c]
	default:
		panic("compiler: unhandled node kind")
	}
}

func compare(a, b float64, cmp dag.CompareKind) float64 {
	var result bool
	switch cmp {
	case dag.CompareGt:
		result = a > b
	case dag.CompareLt:
		result = a < b
	case dag.CompareEq:
		result = a == b
	}
	if result {
		return 1
	}
	return 0
}
