package figure

import "github.com/geo-aid/geoaid/pkg/ir"

func entityKindFor(e ir.Entity) EntityKind {
	switch e.Tag {
	case ir.FreePoint:
		return EntityKind{Kind: kindFreePoint}
	case ir.PointOnLine:
		return EntityKind{Kind: kindPointOnLine, Line: VarIndex(e.Line)}
	case ir.PointOnCircle:
		return EntityKind{Kind: kindPointOnCircle, Circle: VarIndex(e.Of)}
	case ir.FreeReal:
		return EntityKind{Kind: kindFreeReal}
	default: // ir.DistanceUnit
		return EntityKind{Kind: kindDistanceUnit}
	}
}

func expressionKindFor(e ir.Expr) ExpressionKind {
	switch e.Tag {
	case ir.EntityRef:
		return ExpressionKind{Kind: kindEntity, ID: EntityIndex(e.EntityID)}
	case ir.LineLineIntersection:
		return ExpressionKind{Kind: kindLineLineIntersection, K: VarIndex(e.K), L: VarIndex(e.L)}
	case ir.AveragePoint:
		return ExpressionKind{Kind: kindAveragePoint, Items: toVarIndices(e.Items)}
	case ir.CircleCenter:
		return ExpressionKind{Kind: kindCircleCenter, Circle: VarIndex(e.Circle)}
	case ir.Sum:
		return ExpressionKind{Kind: kindSum, Plus: toVarIndices(e.Plus), Minus: toVarIndices(e.Minus)}
	case ir.Product:
		return ExpressionKind{Kind: kindProduct, Times: toVarIndices(e.Times), By: toVarIndices(e.By)}
	case ir.Const:
		return ExpressionKind{Kind: kindConst, Const: Complex{Real: e.Real, Imaginary: e.Imag}}
	case ir.Power:
		return ExpressionKind{Kind: kindPower, Value: VarIndex(e.Value), Exponent: Ratio{Num: e.Exponent.Num, Denom: e.Exponent.Denom}}
	case ir.PointPointDistance:
		return ExpressionKind{Kind: kindPointPointDistance, P: VarIndex(e.P), Q: VarIndex(e.Q)}
	case ir.PointLineDistance:
		return ExpressionKind{Kind: kindPointLineDistance, Point: VarIndex(e.Point), Line: VarIndex(e.Line)}
	case ir.ThreePointAngle:
		return ExpressionKind{Kind: kindThreePointAngle, A: VarIndex(e.A), B: VarIndex(e.B), C: VarIndex(e.C)}
	case ir.ThreePointAngleDir:
		return ExpressionKind{Kind: kindThreePointAngleDir, A: VarIndex(e.A), B: VarIndex(e.B), C: VarIndex(e.C)}
	case ir.TwoLineAngle:
		return ExpressionKind{Kind: kindTwoLineAngle, K: VarIndex(e.K), L: VarIndex(e.L)}
	case ir.PointX:
		return ExpressionKind{Kind: kindPointX, Point: VarIndex(e.Point)}
	case ir.PointY:
		return ExpressionKind{Kind: kindPointY, Point: VarIndex(e.Point)}
	case ir.PointPoint:
		return ExpressionKind{Kind: kindPointPoint, P: VarIndex(e.P), Q: VarIndex(e.Q)}
	case ir.AngleBisector:
		return ExpressionKind{Kind: kindAngleBisector, A: VarIndex(e.A), B: VarIndex(e.B), C: VarIndex(e.C)}
	case ir.PerpendicularThrough:
		return ExpressionKind{Kind: kindPerpendicularThrough, Point: VarIndex(e.Point), Line: VarIndex(e.Line)}
	case ir.ParallelThrough:
		return ExpressionKind{Kind: kindParallelThrough, Point: VarIndex(e.Point), Line: VarIndex(e.Line)}
	case ir.ConstructCircle:
		return ExpressionKind{Kind: kindConstructCircle, Center: VarIndex(e.Center), Radius: VarIndex(e.Radius)}
	default:
		panic("figure: unhandled ir expression tag")
	}
}

func toVarIndices(items []ir.VarIndex) []VarIndex {
	out := make([]VarIndex, len(items))
	for i, v := range items {
		out[i] = VarIndex(v)
	}
	return out
}
