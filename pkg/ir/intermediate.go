package ir

// Style mirrors the figure's line-drawing style so that declarative Items
// can carry it straight through to the assembled figure.
type Style uint8

const (
	StyleSolid Style = iota
	StyleDotted
	StyleDashed
	StyleBold
)

// Label is a math-string annotation anchored to an item, offset from that
// item's resolved position by a fixed figure-space vector. The offset is a
// pre-resolved placement hint; genuine label-layout heuristics belong to
// the renderer collaborator and are out of scope here.
type Label struct {
	Content        string
	OffsetX, OffsetY float64
}

// ItemTag selects which drawable shape a figure Item represents.
type ItemTag uint8

const (
	ItemPoint ItemTag = iota
	ItemLine
	ItemRay
	ItemSegment
	ItemCircle
)

// Item is one declarative drawable entry in a figure view. Point/Line/Circle
// use ID as the defining variable; Ray/Segment use the pair (PID, QID).
type Item struct {
	Tag ItemTag

	ID       VarIndex
	PID, QID VarIndex

	DisplayDot bool
	Style      Style
	Label      *Label
}

// Figure is the duplicate view §6 describes: a subset of variables and
// entities (addressed by the same Entity{id} convention as the main
// variable list) plus the list of drawable items that reference them.
type Figure struct {
	Entities  []Entity
	Variables []Expr
	Items     []Item
}

// Intermediate is the full input this system's lowering consumes: every
// entity and variable definition, every rule, and the figure view used for
// final assembly.
type Intermediate struct {
	Entities  []Entity
	Variables []Expr
	Rules     []Rule
	Figure    Figure
}
