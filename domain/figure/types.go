// Package figure holds renderer-agnostic chart descriptions.
package figure

// Kind is the chart family
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Slice is one weighted sector of a proportion chart
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Point is one launch plotted on a distribution chart
type Point struct {
	PayloadMassKg   float64 `json:"x"`
	Outcome         int     `json:"y"`
	BoosterCategory string  `json:"color"`
	Site            string  `json:"site"`
	FlightNumber    int     `json:"flight_number,omitempty"`
}

// Figure describes what to draw; renderers decide how
type Figure struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	Names      string   `json:"names,omitempty"`
	XLabel     string   `json:"x_label,omitempty"`
	YLabel     string   `json:"y_label,omitempty"`
	ColorBy    string   `json:"color_by,omitempty"`
	Slices     []Slice  `json:"slices,omitempty"`
	Points     []Point  `json:"points,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Empty reports whether there is nothing to draw
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindPie:
		return f.Total() == 0
	case KindScatter:
		return len(f.Points) == 0
	}
	return true
}

// Total sums the slice values
func (f Figure) Total() int {
	total := 0
	for _, s := range f.Slices {
		total += s.Value
	}
	return total
}

// PointsByCategory groups points by color category, preserving Categories order
func (f Figure) PointsByCategory() map[string][]Point {
	groups := make(map[string][]Point, len(f.Categories))
	for _, p := range f.Points {
		groups[p.BoosterCategory] = append(groups[p.BoosterCategory], p)
	}
	return groups
}
