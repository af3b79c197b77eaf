package lowering

import (
	"github.com/geo-aid/geoaid/pkg/dag"
	"github.com/geo-aid/geoaid/pkg/ir"
	"github.com/geo-aid/geoaid/pkg/value"
)

func normalize(a *dag.Arena, c value.Complex) value.Complex {
	return c.DivReal(a, c.Modulus(a))
}

// compile lowers one IR variable to its Value, following the closed form
// fixed for its tag. Every operand reference must already be present in
// l.variables (or, for Entity{id}, in l.adjustables): the IR's own ordering
// invariant guarantees this holds by construction.
func (l *lowerer) compile(expr ir.Expr) value.Value {
	a := l.arena
	switch expr.Tag {
	case ir.EntityRef:
		return l.compileEntityRef(expr.EntityID)

	case ir.LineLineIntersection:
		k := l.v(expr.K).ToLine()
		m := l.v(expr.L).ToLine()
		numerator := k.Origin.Sub(a, m.Origin).Div(a, m.Direction).Imag
		denominator := k.Direction.Div(a, m.Direction).Imag
		t := a.Div(numerator, denominator)
		point := k.Origin.Sub(a, k.Direction.MulReal(a, t))
		return value.FromComplex(point)

	case ir.AveragePoint:
		sum := value.Complex{Real: a.Zero(), Imag: a.Zero()}
		for _, item := range expr.Items {
			sum = sum.Add(a, l.c(item))
		}
		avg := sum.DivReal(a, a.Const(float64(len(expr.Items))))
		return value.FromComplex(avg)

	case ir.CircleCenter:
		return value.FromComplex(l.v(expr.Circle).ToCircle().Center)

	case ir.Sum:
		total := value.Complex{Real: a.Zero(), Imag: a.Zero()}
		for _, p := range expr.Plus {
			total = total.Add(a, l.c(p))
		}
		for _, m := range expr.Minus {
			total = total.Sub(a, l.c(m))
		}
		return value.FromComplex(total)

	case ir.Product:
		total := value.ConstComplex(a, 1, 0)
		for _, t := range expr.Times {
			total = total.Mul(a, l.c(t))
		}
		for _, b := range expr.By {
			total = total.Div(a, l.c(b))
		}
		return value.FromComplex(total)

	case ir.Const:
		return value.FromComplex(value.ConstComplex(a, expr.Real, expr.Imag))

	case ir.Power:
		return value.FromComplex(l.c(expr.Value).Pow(a, expr.Exponent.Float()))

	case ir.PointPointDistance:
		diff := l.c(expr.P).Sub(a, l.c(expr.Q))
		return value.FromComplex(value.RealComplex(a, diff.Modulus(a)))

	case ir.PointLineDistance:
		line := l.v(expr.Line).ToLine()
		diff := l.c(expr.Point).Sub(a, line.Origin)
		ratio := diff.Div(a, line.Direction)
		return value.FromComplex(value.RealComplex(a, a.Abs(ratio.Imag)))

	case ir.ThreePointAngle:
		ab := l.c(expr.A).Sub(a, l.c(expr.B))
		cb := l.c(expr.C).Sub(a, l.c(expr.B))
		dot := a.Add(a.Mul(ab.Real, cb.Real), a.Mul(ab.Imag, cb.Imag))
		denom := a.Mul(ab.Modulus(a), cb.Modulus(a))
		theta := a.Acos(a.Div(dot, denom))
		return value.FromComplex(value.RealComplex(a, theta))

	case ir.ThreePointAngleDir:
		ab := l.c(expr.A).Sub(a, l.c(expr.B))
		cb := l.c(expr.C).Sub(a, l.c(expr.B))
		theta := cb.Div(a, ab).Arg(a)
		return value.FromComplex(value.RealComplex(a, theta))

	case ir.TwoLineAngle:
		k := l.v(expr.K).ToLine()
		m := l.v(expr.L).ToLine()
		theta := k.Direction.Div(a, m.Direction).Arg(a)
		return value.FromComplex(value.RealComplex(a, a.Abs(theta)))

	case ir.PointX:
		return value.FromComplex(value.RealComplex(a, l.c(expr.Point).Real))

	case ir.PointY:
		return value.FromComplex(value.RealComplex(a, l.c(expr.Point).Imag))

	case ir.PointPoint:
		p := l.c(expr.P)
		q := l.c(expr.Q)
		diff := q.Sub(a, p)
		dir := diff.DivReal(a, diff.Modulus(a))
		return value.FromLine(value.Line{Origin: p, Direction: dir})

	case ir.AngleBisector:
		return value.FromLine(l.angleBisector(expr))

	case ir.PerpendicularThrough:
		line := l.v(expr.Line).ToLine()
		return value.FromLine(value.Line{Origin: l.c(expr.Point), Direction: line.Direction.MulI(a)})

	case ir.ParallelThrough:
		line := l.v(expr.Line).ToLine()
		return value.FromLine(value.Line{Origin: l.c(expr.Point), Direction: line.Direction})

	case ir.ConstructCircle:
		return value.FromCircle(value.Circle{Center: l.c(expr.Center), Radius: l.c(expr.Radius).Real})

	default:
		panic("lowering: unhandled expression tag")
	}
}

func (l *lowerer) compileEntityRef(id ir.EntityIndex) value.Value {
	a := l.arena
	ent := l.entities[id]
	switch ent.Tag {
	case ir.FreePoint:
		return l.adjustables[id]

	case ir.PointOnLine:
		line := l.v(ent.Line).ToLine()
		offset := l.adjustables[id].ToScalar()
		point := line.Origin.Add(a, line.Direction.MulReal(a, offset))
		return value.FromComplex(point)

	case ir.PointOnCircle:
		circle := l.v(ent.Of).ToCircle()
		theta := a.Mul(l.adjustables[id].ToScalar(), a.Const(value.TwoPi))
		dir := value.Complex{Real: a.Cos(theta), Imag: a.Sin(theta)}
		point := circle.Center.Add(a, dir.MulReal(a, circle.Radius))
		return value.FromComplex(point)

	default: // FreeReal, DistanceUnit
		return value.FromComplex(value.RealComplex(a, l.adjustables[id].ToScalar()))
	}
}

// angleBisector builds the bisector of angle arm1-vertex-arm2 as the line
// through vertex with direction given by the "square root by norm" of
// z = (arm1-vertex)(arm2-vertex): normalize(z + |z|) when Re(z) > 0, or the
// same construction on -z rotated by i otherwise. Both branches share the
// same comparison, so they're combined with a single component-wise select.
func (l *lowerer) angleBisector(expr ir.Expr) value.Line {
	a := l.arena
	vertex := l.c(expr.B)
	z := l.c(expr.A).Sub(a, vertex).Mul(a, l.c(expr.C).Sub(a, vertex))
	modZ := z.Modulus(a)

	positive := normalize(a, z.AddReal(a, modZ))
	negative := normalize(a, z.Neg(a).AddReal(a, modZ)).MulI(a)

	cond := a.Compare(z.Real, a.Zero(), dag.CompareGt)
	direction := positive.Select(a, cond, negative)
	return value.Line{Origin: vertex, Direction: direction}
}
