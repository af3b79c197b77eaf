// Package value implements the typed geometric façade over pkg/dag:
// Complex, Line and Circle values, each a small bundle of node handles with
// arithmetic that desugars to primitive dag node creations. It also
// provides Value, a tagged union covering both entity adjustables (a raw
// scalar or a complex point) and lowered expression results (complex, line
// or circle), used as the common currency between pkg/ir's lowering pass
// and rule compilation.
package value

import (
	"fmt"
	"math"

	"github.com/geo-aid/geoaid/pkg/dag"
)

// Complex is a point or a general complex number, represented as a pair of
// scalar node handles.
type Complex struct {
	Real, Imag dag.NodeID
}

// Line is an infinite line given by an origin point and a direction vector.
type Line struct {
	Origin, Direction Complex
}

// Circle is a circle given by its center and a scalar radius node.
type Circle struct {
	Center Complex
	Radius dag.NodeID
}

func RealComplex(a *dag.Arena, re dag.NodeID) Complex {
	return Complex{Real: re, Imag: a.Zero()}
}

func ConstComplex(a *dag.Arena, re, im float64) Complex {
	return Complex{Real: a.Const(re), Imag: a.Const(im)}
}

func (c Complex) Add(a *dag.Arena, o Complex) Complex {
	return Complex{Real: a.Add(c.Real, o.Real), Imag: a.Add(c.Imag, o.Imag)}
}

func (c Complex) Sub(a *dag.Arena, o Complex) Complex {
	return Complex{Real: a.Sub(c.Real, o.Real), Imag: a.Sub(c.Imag, o.Imag)}
}

func (c Complex) Neg(a *dag.Arena) Complex {
	return Complex{Real: a.Neg(c.Real), Imag: a.Neg(c.Imag)}
}

// Mul returns the complex product c*o: (ac-bd) + (ad+bc)i.
func (c Complex) Mul(a *dag.Arena, o Complex) Complex {
	ac := a.Mul(c.Real, o.Real)
	bd := a.Mul(c.Imag, o.Imag)
	ad := a.Mul(c.Real, o.Imag)
	bc := a.Mul(c.Imag, o.Real)
	return Complex{Real: a.Sub(ac, bd), Imag: a.Add(ad, bc)}
}

// Div returns the complex quotient c/o.
func (c Complex) Div(a *dag.Arena, o Complex) Complex {
	denom := a.Add(a.Mul(o.Real, o.Real), a.Mul(o.Imag, o.Imag))
	ac := a.Mul(c.Real, o.Real)
	bd := a.Mul(c.Imag, o.Imag)
	bc := a.Mul(c.Imag, o.Real)
	ad := a.Mul(c.Real, o.Imag)
	return Complex{
		Real: a.Div(a.Add(ac, bd), denom),
		Imag: a.Div(a.Sub(bc, ad), denom),
	}
}

func (c Complex) MulReal(a *dag.Arena, s dag.NodeID) Complex {
	return Complex{Real: a.Mul(c.Real, s), Imag: a.Mul(c.Imag, s)}
}

func (c Complex) DivReal(a *dag.Arena, s dag.NodeID) Complex {
	return Complex{Real: a.Div(c.Real, s), Imag: a.Div(c.Imag, s)}
}

func (c Complex) AddReal(a *dag.Arena, s dag.NodeID) Complex {
	return Complex{Real: a.Add(c.Real, s), Imag: c.Imag}
}

// MulI returns c multiplied by the imaginary unit, i.e. a 90-degree rotation.
func (c Complex) MulI(a *dag.Arena) Complex {
	return Complex{Real: a.Neg(c.Imag), Imag: c.Real}
}

// Modulus returns |c| = sqrt(re^2 + im^2).
func (c Complex) Modulus(a *dag.Arena) dag.NodeID {
	sq := a.Add(a.Mul(c.Real, c.Real), a.Mul(c.Imag, c.Imag))
	return a.Pow(sq, 0.5)
}

// Arg returns atan2(im, re).
func (c Complex) Arg(a *dag.Arena) dag.NodeID {
	return a.Atan2(c.Imag, c.Real)
}

// Exp returns e^c = e^re * (cos(im) + i sin(im)).
func (c Complex) Exp(a *dag.Arena) Complex {
	scale := a.Exp(c.Real)
	return Complex{Real: a.Mul(scale, a.Cos(c.Imag)), Imag: a.Mul(scale, a.Sin(c.Imag))}
}

// Log returns the principal complex logarithm of c: log|c| + i*arg(c).
func (c Complex) Log(a *dag.Arena) Complex {
	return Complex{Real: a.Log(c.Modulus(a)), Imag: c.Arg(a)}
}

// Pow raises c to a real power p via exp(p * log(c)).
func (c Complex) Pow(a *dag.Arena, p float64) Complex {
	logC := c.Log(a)
	scaled := Complex{Real: a.Mul(logC.Real, a.Const(p)), Imag: a.Mul(logC.Imag, a.Const(p))}
	return scaled.Exp(a)
}

// Select chooses between c (the "then" branch) and els component-wise based
// on cond, the handle of a dag.Compare node.
func (c Complex) Select(a *dag.Arena, cond dag.NodeID, els Complex) Complex {
	return Complex{
		Real: a.Ternary(cond, c.Real, els.Real),
		Imag: a.Ternary(cond, c.Imag, els.Imag),
	}
}

// Value is a tagged union over everything lowering produces: either a raw
// scalar (an entity adjustable that has no geometric shape of its own) or a
// Complex/Line/Circle (an entity's point value, or a lowered expression
// result). The To* accessors panic on a kind mismatch, mirroring the
// reference compiler's fail-loudly-on-type-confusion behavior: a malformed
// IR is a programmer error, not a recoverable runtime condition.
type Kind uint8

const (
	KindScalar Kind = iota
	KindComplex
	KindLine
	KindCircle
)

type Value struct {
	kind    Kind
	scalar  dag.NodeID
	complex Complex
	line    Line
	circle  Circle
}

func Scalar(n dag.NodeID) Value           { return Value{kind: KindScalar, scalar: n} }
func FromComplex(c Complex) Value         { return Value{kind: KindComplex, complex: c} }
func FromLine(l Line) Value               { return Value{kind: KindLine, line: l} }
func FromCircle(c Circle) Value           { return Value{kind: KindCircle, circle: c} }
func (v Value) Kind() Kind                { return v.kind }

func (v Value) ToScalar() dag.NodeID {
	if v.kind != KindScalar {
		panic(fmt.Sprintf("value: expected scalar, got kind %d", v.kind))
	}
	return v.scalar
}

func (v Value) ToComplex() Complex {
	if v.kind != KindComplex {
		panic(fmt.Sprintf("value: expected complex, got kind %d", v.kind))
	}
	return v.complex
}

func (v Value) ToLine() Line {
	if v.kind != KindLine {
		panic(fmt.Sprintf("value: expected line, got kind %d", v.kind))
	}
	return v.line
}

func (v Value) ToCircle() Circle {
	if v.kind != KindCircle {
		panic(fmt.Sprintf("value: expected circle, got kind %d", v.kind))
	}
	return v.circle
}

// TwoPi is used throughout lowering to convert a point-on-circle's raw
// adjustable, measured in full turns, into an angle in radians.
const TwoPi = 2 * math.Pi
