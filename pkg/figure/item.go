package figure

import (
	"encoding/json"
	"fmt"
)

// Item is the kebab-case-tagged union of drawable figure entries: a point,
// line, ray, segment, or circle, each carrying its own style and optional
// label.
type Item struct {
	kind string

	point  PointItem
	line   LineItem
	twoPt  TwoPointItem // shared by ray and segment
	circle CircleItem
}

func PointDrawable(p PointItem) Item      { return Item{kind: "point", point: p} }
func LineDrawable(l LineItem) Item        { return Item{kind: "line", line: l} }
func RayDrawable(t TwoPointItem) Item     { return Item{kind: "ray", twoPt: t} }
func SegmentDrawable(t TwoPointItem) Item { return Item{kind: "segment", twoPt: t} }
func CircleDrawable(c CircleItem) Item    { return Item{kind: "circle", circle: c} }

func (it Item) MarshalJSON() ([]byte, error) {
	switch it.kind {
	case "point":
		return json.Marshal(struct {
			Type string `json:"type"`
			PointItem
		}{"point", it.point})
	case "line":
		return json.Marshal(struct {
			Type string `json:"type"`
			LineItem
		}{"line", it.line})
	case "ray":
		return json.Marshal(struct {
			Type string `json:"type"`
			TwoPointItem
		}{"ray", it.twoPt})
	case "segment":
		return json.Marshal(struct {
			Type string `json:"type"`
			TwoPointItem
		}{"segment", it.twoPt})
	case "circle":
		return json.Marshal(struct {
			Type string `json:"type"`
			CircleItem
		}{"circle", it.circle})
	default:
		return nil, fmt.Errorf("figure: item has no kind set")
	}
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag.Type {
	case "point":
		var p PointItem
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*it = PointDrawable(p)
	case "line":
		var l LineItem
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		*it = LineDrawable(l)
	case "ray":
		var tp TwoPointItem
		if err := json.Unmarshal(data, &tp); err != nil {
			return err
		}
		*it = RayDrawable(tp)
	case "segment":
		var tp TwoPointItem
		if err := json.Unmarshal(data, &tp); err != nil {
			return err
		}
		*it = SegmentDrawable(tp)
	case "circle":
		var c CircleItem
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*it = CircleDrawable(c)
	default:
		return fmt.Errorf("figure: unknown item type %q", tag.Type)
	}
	return nil
}

// PointItem is usually depicted by a dot.
type PointItem struct {
	Position   Position `json:"position"`
	ID         VarIndex `json:"id"`
	DisplayDot bool     `json:"display_dot"`
	Label      *Label   `json:"label,omitempty"`
}

// LineItem is an infinite line, drawn clipped to two endpoints.
type LineItem struct {
	Points [2]Position `json:"points"`
	ID     VarIndex    `json:"id"`
	Style  Style       `json:"style"`
	Label  *Label      `json:"label,omitempty"`
}

// TwoPointItem is a ray or a segment between two identified points.
type TwoPointItem struct {
	Points [2]Position `json:"points"`
	PID    VarIndex    `json:"p_id"`
	QID    VarIndex    `json:"q_id"`
	Style  Style       `json:"style"`
	Label  *Label      `json:"label,omitempty"`
}

// CircleItem is a drawn circle.
type CircleItem struct {
	Center Position `json:"center"`
	Radius float64  `json:"radius"`
	ID     VarIndex `json:"id"`
	Style  Style    `json:"style"`
	Label  *Label   `json:"label,omitempty"`
}
