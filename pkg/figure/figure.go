package figure

// Figure is the complete evaluated output Geo-AID hands to a renderer
// collaborator.
type Figure struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Expressions []Expression `json:"expressions"`
	Entities    []Entity     `json:"entities"`
	Items       []Item       `json:"items"`
}
