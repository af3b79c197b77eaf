// Package figure defines Geo-AID's JSON output format — the evaluated
// Figure a renderer collaborator consumes — and the assembly step that
// produces one from a compiled program's solved input vector.
package figure

import (
	"encoding/json"
	"fmt"
)

// Complex is a complex number, serialized as {"real":..,"imaginary":..}.
// Both fields default to 0 on decode, matching a point or plain number
// whose imaginary part was omitted.
type Complex struct {
	Real      float64 `json:"real"`
	Imaginary float64 `json:"imaginary"`
}

// Ratio is a rational number. Denom must be non-zero and defaults to 1 when
// absent from the input JSON.
type Ratio struct {
	Num   int64 `json:"num"`
	Denom int64 `json:"denom"`
}

type ratioWire struct {
	Num   int64  `json:"num"`
	Denom *int64 `json:"denom,omitempty"`
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	return json.Marshal(ratioWire{Num: r.Num, Denom: &r.Denom})
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var w ratioWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Num = w.Num
	if w.Denom == nil {
		r.Denom = 1
	} else {
		r.Denom = *w.Denom
	}
	if r.Denom == 0 {
		return fmt.Errorf("figure: ratio denominator must be non-zero")
	}
	return nil
}

// Line is an infinite line, serialized as {"origin":Complex,"direction":Complex}.
type Line struct {
	Origin    Complex `json:"origin"`
	Direction Complex `json:"direction"`
}

// Circle is a circle with a positive radius.
type Circle struct {
	Center Complex `json:"center"`
	Radius float64 `json:"radius"`
}

// Position is a figure-space (x, y) coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Scale returns p scaled by a scalar factor.
func (p Position) Scale(f float64) Position {
	return Position{X: p.X * f, Y: p.Y * f}
}

// Label is a math-string annotation anchored at a figure-space position.
// The content's precise notation (bracketing, prime markers) is opaque
// here — only the renderer collaborator interprets it.
type Label struct {
	Position Position `json:"position"`
	Content  string   `json:"content"`
}

// Style selects how a drawn line or circle outline looks.
type Style string

const (
	StyleSolid  Style = "solid"
	StyleDotted Style = "dotted"
	StyleDashed Style = "dashed"
	StyleBold   Style = "bold"
)
