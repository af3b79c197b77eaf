package figure

import (
	"encoding/json"
	"fmt"
)

// VarIndex names an expression by its position in a Figure's Expressions list.
type VarIndex int

// EntityIndex names an entity by its position in a Figure's Entities list.
type EntityIndex int

// ExpressionKind is the kebab-case-tagged union of everything a variable can
// be lowered from. Every field is meaningful only for the kinds that use it;
// MarshalJSON emits only the fields relevant to Kind, matching the original
// per-variant wire shape exactly rather than dumping every zero field.
type ExpressionKind struct {
	Kind string

	ID EntityIndex

	K, L VarIndex

	Items       []VarIndex
	Plus, Minus []VarIndex
	Times, By   []VarIndex

	Circle VarIndex

	Const Complex

	Value    VarIndex
	Exponent Ratio

	P, Q VarIndex

	Point, Line VarIndex

	A, B, C VarIndex

	Center, Radius VarIndex
}

const (
	kindEntity                = "entity"
	kindLineLineIntersection  = "line-line-intersection"
	kindAveragePoint          = "average-point"
	kindCircleCenter          = "circle-center"
	kindSum                   = "sum"
	kindProduct               = "product"
	kindConst                 = "const"
	kindPower                 = "power"
	kindPointPointDistance    = "point-point-distance"
	kindPointLineDistance     = "point-line-distance"
	kindThreePointAngle       = "three-point-angle"
	kindThreePointAngleDir    = "three-point-angle-dir"
	kindTwoLineAngle          = "two-line-angle"
	kindPointX                = "point-x"
	kindPointY                = "point-y"
	kindPointPoint            = "point-point"
	kindAngleBisector         = "angle-bisector"
	kindPerpendicularThrough  = "perpendicular-through"
	kindParallelThrough       = "parallel-through"
	kindConstructCircle       = "construct-circle"
)

func (e ExpressionKind) MarshalJSON() ([]byte, error) {
	type tagged = map[string]interface{}
	var body tagged
	switch e.Kind {
	case kindEntity:
		body = tagged{"id": e.ID}
	case kindLineLineIntersection:
		body = tagged{"k": e.K, "l": e.L}
	case kindAveragePoint:
		body = tagged{"items": orEmpty(e.Items)}
	case kindCircleCenter:
		body = tagged{"circle": e.Circle}
	case kindSum:
		body = tagged{"plus": orEmpty(e.Plus), "minus": orEmpty(e.Minus)}
	case kindProduct:
		body = tagged{"times": orEmpty(e.Times), "by": orEmpty(e.By)}
	case kindConst:
		body = tagged{"value": e.Const}
	case kindPower:
		body = tagged{"value": e.Value, "exponent": e.Exponent}
	case kindPointPointDistance:
		body = tagged{"p": e.P, "q": e.Q}
	case kindPointLineDistance:
		body = tagged{"point": e.Point, "line": e.Line}
	case kindThreePointAngle, kindThreePointAngleDir:
		body = tagged{"a": e.A, "b": e.B, "c": e.C}
	case kindTwoLineAngle:
		body = tagged{"k": e.K, "l": e.L}
	case kindPointX, kindPointY:
		body = tagged{"point": e.Point}
	case kindPointPoint:
		body = tagged{"p": e.P, "q": e.Q}
	case kindAngleBisector:
		body = tagged{"p": e.A, "q": e.B, "r": e.C}
	case kindPerpendicularThrough, kindParallelThrough:
		body = tagged{"point": e.Point, "line": e.Line}
	case kindConstructCircle:
		body = tagged{"center": e.Center, "radius": e.Radius}
	default:
		return nil, fmt.Errorf("figure: unknown expression kind %q", e.Kind)
	}
	body["type"] = e.Kind
	return json.Marshal(body)
}

func (e *ExpressionKind) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	switch tag.Type {
	case kindEntity:
		var body struct {
			ID EntityIndex `json:"id"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, ID: body.ID}

	case kindLineLineIntersection, kindTwoLineAngle:
		var body struct{ K, L VarIndex }
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, K: body.K, L: body.L}

	case kindAveragePoint:
		var body struct {
			Items []VarIndex `json:"items"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Items: body.Items}

	case kindCircleCenter:
		var body struct {
			Circle VarIndex `json:"circle"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Circle: body.Circle}

	case kindSum:
		var body struct{ Plus, Minus []VarIndex }
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Plus: body.Plus, Minus: body.Minus}

	case kindProduct:
		var body struct{ Times, By []VarIndex }
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Times: body.Times, By: body.By}

	case kindConst:
		var body struct {
			Value Complex `json:"value"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Const: body.Value}

	case kindPower:
		var body struct {
			Value    VarIndex `json:"value"`
			Exponent Ratio    `json:"exponent"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Value: body.Value, Exponent: body.Exponent}

	case kindPointPointDistance, kindPointPoint:
		var body struct{ P, Q VarIndex }
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, P: body.P, Q: body.Q}

	case kindPointLineDistance, kindPerpendicularThrough, kindParallelThrough:
		var body struct{ Point, Line VarIndex }
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Point: body.Point, Line: body.Line}

	case kindThreePointAngle, kindThreePointAngleDir:
		var body struct{ A, B, C VarIndex }
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, A: body.A, B: body.B, C: body.C}

	case kindPointX, kindPointY:
		var body struct {
			Point VarIndex `json:"point"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Point: body.Point}

	case kindAngleBisector:
		var body struct {
			P, Q, R VarIndex
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, A: body.P, B: body.Q, C: body.R}

	case kindConstructCircle:
		var body struct{ Center, Radius VarIndex }
		if err := json.Unmarshal(data, &body); err != nil {
			return err
		}
		*e = ExpressionKind{Kind: tag.Type, Center: body.Center, Radius: body.Radius}

	default:
		return fmt.Errorf("figure: unknown expression kind %q", tag.Type)
	}
	return nil
}

func orEmpty(items []VarIndex) []VarIndex {
	if items == nil {
		return []VarIndex{}
	}
	return items
}

// Expression is one evaluated variable: its concrete value and the closed
// form it was computed from.
type Expression struct {
	Hint Value          `json:"hint"`
	Kind ExpressionKind `json:"kind"`
}
