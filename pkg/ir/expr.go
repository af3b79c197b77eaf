package ir

// Ratio is a rational exponent p/q, as used by the Power expression.
type Ratio struct {
	Num, Denom int64
}

// Float returns the ratio as a float64 for use as a dag.Pow exponent.
func (r Ratio) Float() float64 {
	return float64(r.Num) / float64(r.Denom)
}

// ExprTag selects which closed form a variable's Expr computes. The node
// kinds are a small closed set per the IR's own design, so a single tagged
// struct with unused fields left zero is preferred here over a type switch
// on an interface — there is no dynamic dispatch to model, only a fixed
// vocabulary of shapes.
type ExprTag uint8

const (
	EntityRef ExprTag = iota
	LineLineIntersection
	AveragePoint
	CircleCenter
	Sum
	Product
	Const
	Power
	PointPointDistance
	PointLineDistance
	ThreePointAngle
	ThreePointAngleDir
	TwoLineAngle
	PointX
	PointY
	PointPoint
	AngleBisector
	PerpendicularThrough
	ParallelThrough
	ConstructCircle
)

// Expr is one lowered IR variable. Only the fields relevant to Tag are
// populated; all others are left at their zero value.
type Expr struct {
	Tag ExprTag

	// Entity
	EntityID EntityIndex

	// LineLineIntersection{K,L}, TwoLineAngle{K,L}
	K, L VarIndex

	// AveragePoint{Items}, Sum{Plus,Minus}, Product{Times,By}
	Items       []VarIndex
	Plus, Minus []VarIndex
	Times, By   []VarIndex

	// CircleCenter{Circle}
	Circle VarIndex

	// Const{Real,Imag}
	Real, Imag float64

	// Power{Value,Exponent}
	Value    VarIndex
	Exponent Ratio

	// PointPointDistance{P,Q}, PointPoint{P,Q}
	P, Q VarIndex

	// PointLineDistance{Point,Line}, PointX{Point}, PointY{Point},
	// PerpendicularThrough{Point,Line}, ParallelThrough{Point,Line}
	Point VarIndex
	Line  VarIndex

	// ThreePointAngle{A,B,C}, ThreePointAngleDir{A,B,C},
	// AngleBisector{arm1=A, vertex=B, arm2=C}
	A, B, C VarIndex

	// ConstructCircle{Center,Radius}
	Center, Radius VarIndex
}
