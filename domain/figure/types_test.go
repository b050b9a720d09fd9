package figure

import "testing"

func TestFigureEmpty(t *testing.T) {
	tests := []struct {
		name string
		fig  Figure
		want bool
	}{
		{"pie without slices", Figure{Kind: KindPie}, true},
		{"pie with zero slices", Figure{Kind: KindPie, Slices: []Slice{{"Success", 0}, {"Failure", 0}}}, true},
		{"pie with counts", Figure{Kind: KindPie, Slices: []Slice{{"Success", 2}}}, false},
		{"scatter without points", Figure{Kind: KindScatter}, true},
		{"scatter with point", Figure{Kind: KindScatter, Points: []Point{{PayloadMassKg: 1}}}, false},
		{"unknown kind", Figure{}, true},
	}

	for _, tt := range tests {
		if got := tt.fig.Empty(); got != tt.want {
			t.Errorf("%s: Empty() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPointsByCategory(t *testing.T) {
	fig := Figure{
		Kind:       KindScatter,
		Categories: []string{"FT", "B4"},
		Points: []Point{
			{PayloadMassKg: 1, BoosterCategory: "FT"},
			{PayloadMassKg: 2, BoosterCategory: "B4"},
			{PayloadMassKg: 3, BoosterCategory: "FT"},
		},
	}

	groups := fig.PointsByCategory()
	if len(groups["FT"]) != 2 || len(groups["B4"]) != 1 {
		t.Fatalf("unexpected grouping: %+v", groups)
	}
	if groups["FT"][1].PayloadMassKg != 3 {
		t.Errorf("expected load order within a category, got %+v", groups["FT"])
	}
}
