package app

import (
	"math/rand"
	"testing"

	"launchdash/domain/figure"
	"launchdash/domain/launch"
	"launchdash/domain/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	siteA = "KSC LC-39A"
	siteB = "CCAFS LC-40"
)

// twoSiteDataset has 3 successes and 2 failures at siteA and one success at siteB
func twoSiteDataset(t *testing.T) *launch.Dataset {
	t.Helper()
	ds, err := launch.NewDataset([]launch.Record{
		{FlightNumber: 1, Site: siteA, PayloadMassKg: 500, BoosterCategory: "v1.1", Outcome: launch.Success},
		{FlightNumber: 2, Site: siteB, PayloadMassKg: 2500, BoosterCategory: "FT", Outcome: launch.Success},
		{FlightNumber: 3, Site: siteA, PayloadMassKg: 3000, BoosterCategory: "FT", Outcome: launch.Failure},
		{FlightNumber: 4, Site: siteA, PayloadMassKg: 5000, BoosterCategory: "B4", Outcome: launch.Success},
		{FlightNumber: 5, Site: siteA, PayloadMassKg: 9600, BoosterCategory: "B5", Outcome: launch.Success},
		{FlightNumber: 6, Site: siteA, PayloadMassKg: 10000, BoosterCategory: "FT", Outcome: launch.Failure},
	})
	require.NoError(t, err)
	return ds
}

func TestProportionViewAllSites(t *testing.T) {
	ds := twoSiteDataset(t)

	fig := ProportionView(ds, launch.AllSites)

	assert.Equal(t, figure.KindPie, fig.Kind)
	assert.Equal(t, "Total Successful Launches by Site", fig.Title)
	assert.Equal(t, []figure.Slice{{Label: siteA, Value: 3}, {Label: siteB, Value: 1}}, fig.Slices)
	assert.Equal(t, ds.SuccessCount(), fig.Total())
}

func TestProportionViewSingleSite(t *testing.T) {
	ds := twoSiteDataset(t)

	fig := ProportionView(ds, siteA)

	assert.Equal(t, "Success vs. Failure for KSC LC-39A", fig.Title)
	require.Len(t, fig.Slices, 2)
	assert.Equal(t, figure.Slice{Label: "Success", Value: 3}, fig.Slices[0])
	assert.Equal(t, figure.Slice{Label: "Failure", Value: 2}, fig.Slices[1])
	assert.Equal(t, 5, fig.Total())
}

func TestProportionViewSiteWithoutFailures(t *testing.T) {
	ds := twoSiteDataset(t)

	fig := ProportionView(ds, siteB)

	require.Len(t, fig.Slices, 2)
	assert.Equal(t, 1, fig.Slices[0].Value)
	assert.Equal(t, 0, fig.Slices[1].Value)
}

func TestProportionViewUnknownSiteIsEmpty(t *testing.T) {
	ds := twoSiteDataset(t)

	fig := ProportionView(ds, "Nowhere")

	assert.True(t, fig.Empty())
	assert.Empty(t, fig.Slices)
}

func TestDistributionViewScenario(t *testing.T) {
	ds := twoSiteDataset(t)
	state := viewstate.State{Site: siteA, Payload: viewstate.PayloadRange{Low: 0, High: 10000}}

	fig := DistributionView(ds, state)

	assert.Equal(t, figure.KindScatter, fig.Kind)
	assert.Equal(t, "Payload vs. Launch Success for KSC LC-39A", fig.Title)
	assert.Equal(t, "Payload Mass (kg)", fig.XLabel)
	assert.Equal(t, "class", fig.YLabel)
	assert.Equal(t, "Booster Version Category", fig.ColorBy)
	assert.Len(t, fig.Points, 5)
	assert.Equal(t, []string{"v1.1", "FT", "B4", "B5"}, fig.Categories)
}

func TestDistributionViewAllSitesTitle(t *testing.T) {
	ds := twoSiteDataset(t)

	fig := DistributionView(ds, viewstate.Initial(ds))

	assert.Equal(t, "Payload vs. Launch Success (All Sites)", fig.Title)
	assert.Len(t, fig.Points, ds.Len())
}

func TestDistributionViewInclusiveBounds(t *testing.T) {
	ds := twoSiteDataset(t)
	state := viewstate.State{Site: launch.AllSites, Payload: viewstate.PayloadRange{Low: 2500, High: 5000}}

	fig := DistributionView(ds, state)

	var masses []float64
	for _, p := range fig.Points {
		masses = append(masses, p.PayloadMassKg)
	}
	assert.Equal(t, []float64{2500, 3000, 5000}, masses)
}

func TestDistributionViewEmptyResult(t *testing.T) {
	ds := twoSiteDataset(t)

	noneInRange := DistributionView(ds, viewstate.State{Site: launch.AllSites, Payload: viewstate.PayloadRange{Low: 100, High: 200}})
	unknownSite := DistributionView(ds, viewstate.State{Site: "Nowhere", Payload: viewstate.PayloadRange{Low: 0, High: 10000}})

	assert.True(t, noneInRange.Empty())
	assert.True(t, unknownSite.Empty())
	assert.Empty(t, unknownSite.Categories)
}

// Every random closed range must select exactly the records whose mass lies inside it.
func TestFilterRecordsMatchesClosedInterval(t *testing.T) {
	ds := twoSiteDataset(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		a := float64(rng.Intn(11)) * 1000
		b := float64(rng.Intn(11)) * 1000
		if a > b {
			a, b = b, a
		}
		state := viewstate.State{Site: launch.AllSites, Payload: viewstate.PayloadRange{Low: a, High: b}}

		got := FilterRecords(ds, state)

		want := 0
		for _, r := range ds.Records() {
			if r.PayloadMassKg >= a && r.PayloadMassKg <= b {
				want++
			}
		}
		require.Len(t, got, want, "range [%v, %v]", a, b)
		for _, r := range got {
			assert.True(t, r.PayloadMassKg >= a && r.PayloadMassKg <= b)
		}
	}
}

func TestViewsAreIdempotent(t *testing.T) {
	ds := twoSiteDataset(t)
	state := viewstate.State{Site: siteA, Payload: viewstate.PayloadRange{Low: 0, High: 6000}}

	assert.Equal(t, ProportionView(ds, state.Site), ProportionView(ds, state.Site))
	assert.Equal(t, DistributionView(ds, state), DistributionView(ds, state))
}
