package flower

// Root is a placed type node on the outer ring. Angles are in radians, with 0
// pointing up before the graph rotation is applied.
type Root struct {
	Type     string   `json:"type"`
	Color    string   `json:"color"`
	Count    int      `json:"count"`
	Angle    float64  `json:"angle"`
	Position Position `json:"position"`
	Radius   float64  `json:"radius"`
}

// Petal is a placed record node on the inner ring.
type Petal struct {
	Label    string        `json:"label"`
	Types    []LegendEntry `json:"types"`
	Angle    float64       `json:"angle"`
	Position Position      `json:"position"`
	Radius   float64       `json:"radius"`
}

// TypeNames returns the petal's types in canonical order.
func (p Petal) TypeNames() []string {
	return ProjectedRecord{Types: p.Types}.TypeNames()
}

// Connection joins a petal to the root of one of its types.
type Connection struct {
	From  Position `json:"from"`
	To    Position `json:"to"`
	Label string   `json:"label"`
	Type  string   `json:"type"`
	Color string   `json:"color"`
}

// Connections pairs every petal with the roots of its types. Petals whose types
// have no reported root are skipped.
func Connections(roots []Root, petals []Petal) []Connection {
	byType := make(map[string]Root, len(roots))
	for _, r := range roots {
		byType[r.Type] = r
	}
	var out []Connection
	for _, p := range petals {
		for _, e := range p.Types {
			r, ok := byType[e.Type]
			if !ok {
				continue
			}
			out = append(out, Connection{
				From:  p.Position,
				To:    r.Position,
				Label: p.Label,
				Type:  r.Type,
				Color: r.Color,
			})
		}
	}
	return out
}
