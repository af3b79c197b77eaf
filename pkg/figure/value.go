package figure

import (
	"encoding/json"
	"fmt"
)

// Value is the evaluated hint attached to every Expression and Entity: a
// concrete Complex, Line or Circle, tagged with a kebab-case "type" field on
// the wire.
type Value struct {
	kind    string
	complex Complex
	line    Line
	circle  Circle
}

func ComplexValue(c Complex) Value { return Value{kind: "complex", complex: c} }
func LineValue(l Line) Value       { return Value{kind: "line", line: l} }
func CircleValue(c Circle) Value   { return Value{kind: "circle", circle: c} }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case "complex":
		return json.Marshal(struct {
			Type string `json:"type"`
			Complex
		}{"complex", v.complex})
	case "line":
		return json.Marshal(struct {
			Type string `json:"type"`
			Line
		}{"line", v.line})
	case "circle":
		return json.Marshal(struct {
			Type string `json:"type"`
			Circle
		}{"circle", v.circle})
	default:
		return nil, fmt.Errorf("figure: value has no kind set")
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag.Type {
	case "complex":
		var c Complex
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*v = ComplexValue(c)
	case "line":
		var l Line
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		*v = LineValue(l)
	case "circle":
		var c Circle
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*v = CircleValue(c)
	default:
		return fmt.Errorf("figure: unknown value type %q", tag.Type)
	}
	return nil
}
