package figure

import (
	"encoding/json"
	"fmt"
)

// EntityKind is the kebab-case-tagged union of adjustable primitive kinds.
type EntityKind struct {
	Kind string

	Line   VarIndex // PointOnLine
	Circle VarIndex // PointOnCircle
}

const (
	kindFreePoint     = "free-point"
	kindPointOnLine   = "point-on-line"
	kindPointOnCircle = "point-on-circle"
	kindFreeReal      = "free-real"
	kindDistanceUnit  = "distance-unit"
)

func (e EntityKind) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case kindFreePoint, kindFreeReal, kindDistanceUnit:
		return json.Marshal(map[string]interface{}{"type": e.Kind})
	case kindPointOnLine:
		return json.Marshal(map[string]interface{}{"type": e.Kind, "line": e.Line})
	case kindPointOnCircle:
		return json.Marshal(map[string]interface{}{"type": e.Kind, "circle": e.Circle})
	default:
		return nil, fmt.Errorf("figure: unknown entity kind %q", e.Kind)
	}
}

func (e *EntityKind) UnmarshalJSON(data []byte) error {
	var body struct {
		Type   string   `json:"type"`
		Line   VarIndex `json:"line"`
		Circle VarIndex `json:"circle"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	switch body.Type {
	case kindFreePoint, kindFreeReal, kindDistanceUnit, kindPointOnLine, kindPointOnCircle:
		*e = EntityKind{Kind: body.Type, Line: body.Line, Circle: body.Circle}
		return nil
	default:
		return fmt.Errorf("figure: unknown entity kind %q", body.Type)
	}
}

// Entity is one evaluated adjustable primitive.
type Entity struct {
	Hint Value      `json:"hint"`
	Kind EntityKind `json:"kind"`
}
