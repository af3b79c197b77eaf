package figure

import (
	"github.com/geo-aid/geoaid/pkg/compiler"
	"github.com/geo-aid/geoaid/pkg/dag"
	"github.com/geo-aid/geoaid/pkg/ir"
	"github.com/geo-aid/geoaid/pkg/lowering"
	"github.com/geo-aid/geoaid/pkg/value"
)

// collector accumulates the scalar dag nodes that need evaluating and
// remembers, for each registered Value, which output slots hold its
// components.
type collector struct {
	outputs []dag.NodeID
}

func (c *collector) add(id dag.NodeID) int {
	c.outputs = append(c.outputs, id)
	return len(c.outputs) - 1
}

// slots records where a Value's component nodes landed among the collected
// outputs, in a fixed per-kind order.
type slots struct {
	kind value.Kind
	idx  [4]int
}

func (c *collector) register(v value.Value) slots {
	switch v.Kind() {
	case value.KindScalar:
		return slots{kind: value.KindScalar, idx: [4]int{c.add(v.ToScalar())}}
	case value.KindComplex:
		cx := v.ToComplex()
		return slots{kind: value.KindComplex, idx: [4]int{c.add(cx.Real), c.add(cx.Imag)}}
	case value.KindLine:
		ln := v.ToLine()
		return slots{kind: value.KindLine, idx: [4]int{
			c.add(ln.Origin.Real), c.add(ln.Origin.Imag),
			c.add(ln.Direction.Real), c.add(ln.Direction.Imag),
		}}
	case value.KindCircle:
		ci := v.ToCircle()
		return slots{kind: value.KindCircle, idx: [4]int{
			c.add(ci.Center.Real), c.add(ci.Center.Imag), c.add(ci.Radius),
		}}
	default:
		panic("figure: unhandled value kind")
	}
}

func (s slots) value(vals []float64) Value {
	switch s.kind {
	case value.KindScalar:
		return ComplexValue(Complex{Real: vals[s.idx[0]]})
	case value.KindComplex:
		return ComplexValue(Complex{Real: vals[s.idx[0]], Imaginary: vals[s.idx[1]]})
	case value.KindLine:
		return LineValue(Line{
			Origin:    Complex{Real: vals[s.idx[0]], Imaginary: vals[s.idx[1]]},
			Direction: Complex{Real: vals[s.idx[2]], Imaginary: vals[s.idx[3]]},
		})
	case value.KindCircle:
		return CircleValue(Circle{
			Center: Complex{Real: vals[s.idx[0]], Imaginary: vals[s.idx[1]]},
			Radius: vals[s.idx[2]],
		})
	default:
		panic("figure: unhandled value kind")
	}
}

// position reads a point-valued slot pair back as a Position; panics if s
// isn't a complex (point) value.
func (s slots) position(vals []float64) Position {
	if s.kind != value.KindComplex {
		panic("figure: position requested from a non-point value")
	}
	return Position{X: vals[s.idx[0]], Y: vals[s.idx[1]]}
}

// Assemble evaluates the figure view's entities and variables at a solved
// input vector and builds the final drawable Figure. entities is the full
// entity list lowering was built from (the figure view shares its adjustable
// indexing with the main search), figureVariables and items are the
// figure-specific subset and drawable list from the Intermediate's Figure
// view.
func Assemble(entities []ir.Entity, figureVariables []ir.Expr, items []ir.Item, inputs []float64, width, height float64) Figure {
	arena := dag.NewArena(len(inputs))
	lowered := lowering.Lower(arena, entities, figureVariables)

	c := &collector{}
	entitySlots := make([]slots, len(entities))
	for i, v := range lowered.Adjustables {
		entitySlots[i] = c.register(v)
	}
	varSlots := make([]slots, len(figureVariables))
	for i, v := range lowered.Variables {
		varSlots[i] = c.register(v)
	}

	prog := compiler.Compile(arena, c.outputs)
	vals := make([]float64, len(c.outputs))
	prog.Evaluate(inputs, vals)

	outEntities := make([]Entity, len(entities))
	for i, e := range entities {
		outEntities[i] = Entity{Hint: entitySlots[i].value(vals), Kind: entityKindFor(e)}
	}

	outExpressions := make([]Expression, len(figureVariables))
	for i, expr := range figureVariables {
		outExpressions[i] = Expression{Hint: varSlots[i].value(vals), Kind: expressionKindFor(expr)}
	}

	outItems := make([]Item, len(items))
	for i, it := range items {
		outItems[i] = assembleItem(it, varSlots, vals, width, height)
	}

	return Figure{Width: width, Height: height, Expressions: outExpressions, Entities: outEntities, Items: outItems}
}

func assembleItem(it ir.Item, varSlots []slots, vals []float64, canvasWidth, canvasHeight float64) Item {
	switch it.Tag {
	case ir.ItemPoint:
		pos := varSlots[it.ID].position(vals)
		return PointDrawable(PointItem{
			Position:   pos,
			ID:         VarIndex(it.ID),
			DisplayDot: it.DisplayDot,
			Label:      labelAt(it.Label, pos),
		})
	case ir.ItemLine:
		s := varSlots[it.ID]
		origin := Position{X: vals[s.idx[0]], Y: vals[s.idx[1]]}
		direction := Position{X: vals[s.idx[2]], Y: vals[s.idx[3]]}
		points := clipLineToCanvas(origin, direction, canvasWidth, canvasHeight)
		return LineDrawable(LineItem{
			Points: points,
			ID:     VarIndex(it.ID),
			Style:  styleFor(it.Style),
			Label:  labelAt(it.Label, points[0]),
		})
	case ir.ItemRay, ir.ItemSegment:
		p := varSlots[it.PID].position(vals)
		q := varSlots[it.QID].position(vals)
		twoPt := TwoPointItem{
			Points: [2]Position{p, q},
			PID:    VarIndex(it.PID),
			QID:    VarIndex(it.QID),
			Style:  styleFor(it.Style),
			Label:  labelAt(it.Label, p),
		}
		if it.Tag == ir.ItemRay {
			return RayDrawable(twoPt)
		}
		return SegmentDrawable(twoPt)
	case ir.ItemCircle:
		// center/radius are read directly from the circle-valued variable.
		s := varSlots[it.ID]
		center := Position{X: vals[s.idx[0]], Y: vals[s.idx[1]]}
		radius := vals[s.idx[2]]
		return CircleDrawable(CircleItem{
			Center: center,
			Radius: radius,
			ID:     VarIndex(it.ID),
			Style:  styleFor(it.Style),
			Label:  labelAt(it.Label, center),
		})
	default:
		panic("figure: unhandled item tag")
	}
}

// clipLineToCanvas finds where the infinite line through origin in
// direction crosses the canvas rectangle [0,width]x[0,height], returning
// the two most widely separated crossing points. Geo-AID itself resolves
// this (not the renderer): an infinite line has no endpoints of its own,
// but the figure's drawable items are always finite segments.
func clipLineToCanvas(origin, direction Position, width, height float64) [2]Position {
	const eps = 1e-9
	var candidates []Position
	add := func(t float64) {
		p := Position{X: origin.X + t*direction.X, Y: origin.Y + t*direction.Y}
		if p.X >= -eps && p.X <= width+eps && p.Y >= -eps && p.Y <= height+eps {
			candidates = append(candidates, p)
		}
	}
	if direction.X != 0 {
		add((0 - origin.X) / direction.X)
		add((width - origin.X) / direction.X)
	}
	if direction.Y != 0 {
		add((0 - origin.Y) / direction.Y)
		add((height - origin.Y) / direction.Y)
	}
	if len(candidates) < 2 {
		return [2]Position{origin, origin.Add(direction)}
	}

	bestI, bestJ, bestDist := 0, 1, -1.0
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			dx := candidates[i].X - candidates[j].X
			dy := candidates[i].Y - candidates[j].Y
			if d := dx*dx + dy*dy; d > bestDist {
				bestDist, bestI, bestJ = d, i, j
			}
		}
	}
	return [2]Position{candidates[bestI], candidates[bestJ]}
}

func labelAt(l *ir.Label, base Position) *Label {
	if l == nil {
		return nil
	}
	return &Label{
		Position: base.Add(Position{X: l.OffsetX, Y: l.OffsetY}),
		Content:  l.Content,
	}
}

func styleFor(s ir.Style) Style {
	switch s {
	case ir.StyleDotted:
		return StyleDotted
	case ir.StyleDashed:
		return StyleDashed
	case ir.StyleBold:
		return StyleBold
	default:
		return StyleSolid
	}
}
