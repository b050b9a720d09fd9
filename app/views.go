package app

import (
	"fmt"

	"launchdash/domain/figure"
	"launchdash/domain/launch"
	"launchdash/domain/viewstate"
)

const (
	columnSite     = "Launch Site"
	columnPayload  = "Payload Mass (kg)"
	columnClass    = "class"
	columnCategory = "Booster Version Category"
)

// ProportionView describes the success pie chart for the selected site.
//
// For the ALL sentinel the slices are the sites that recorded at least one success,
// weighted by their success count. For a concrete site there are always exactly two
// slices, Success then Failure. A site with no records yields an empty figure.
func ProportionView(ds *launch.Dataset, site string) figure.Figure {
	if site == launch.AllSites {
		fig := figure.Figure{
			Kind:  figure.KindPie,
			Title: "Total Successful Launches by Site",
			Names: columnSite,
		}
		counts := make(map[string]int)
		var order []string
		ds.Each(func(r launch.Record) {
			if !r.Outcome.IsSuccess() {
				return
			}
			if _, ok := counts[r.Site]; !ok {
				order = append(order, r.Site)
			}
			counts[r.Site]++
		})
		for _, s := range order {
			fig.Slices = append(fig.Slices, figure.Slice{Label: s, Value: counts[s]})
		}
		return fig
	}

	fig := figure.Figure{
		Kind:  figure.KindPie,
		Title: fmt.Sprintf("Success vs. Failure for %s", site),
		Names: columnClass,
	}
	if !ds.HasSite(site) {
		return fig
	}
	var success, failure int
	ds.Each(func(r launch.Record) {
		if r.Site != site {
			return
		}
		if r.Outcome.IsSuccess() {
			success++
		} else {
			failure++
		}
	})
	fig.Slices = []figure.Slice{
		{Label: launch.Success.String(), Value: success},
		{Label: launch.Failure.String(), Value: failure},
	}
	return fig
}

// DistributionView describes the payload-versus-outcome scatter chart.
// Points keep dataset order; booster categories are listed in first-appearance order.
func DistributionView(ds *launch.Dataset, state viewstate.State) figure.Figure {
	title := "Payload vs. Launch Success (All Sites)"
	if !state.AllSites() {
		title = fmt.Sprintf("Payload vs. Launch Success for %s", state.Site)
	}
	fig := figure.Figure{
		Kind:    figure.KindScatter,
		Title:   title,
		XLabel:  columnPayload,
		YLabel:  columnClass,
		ColorBy: columnCategory,
	}

	seen := make(map[string]bool)
	for _, r := range FilterRecords(ds, state) {
		fig.Points = append(fig.Points, figure.Point{
			PayloadMassKg:   r.PayloadMassKg,
			Outcome:         int(r.Outcome),
			BoosterCategory: r.BoosterCategory,
			Site:            r.Site,
			FlightNumber:    r.FlightNumber,
		})
		if !seen[r.BoosterCategory] {
			seen[r.BoosterCategory] = true
			fig.Categories = append(fig.Categories, r.BoosterCategory)
		}
	}
	return fig
}

// FilterRecords returns the records with payload in the closed range and, unless
// ALL is selected, launched from the selected site
func FilterRecords(ds *launch.Dataset, state viewstate.State) []launch.Record {
	var out []launch.Record
	ds.Each(func(r launch.Record) {
		if !state.Payload.Contains(r.PayloadMassKg) {
			return
		}
		if !state.AllSites() && r.Site != state.Site {
			return
		}
		out = append(out, r)
	})
	return out
}
