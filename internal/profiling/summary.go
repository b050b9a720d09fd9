package profiling

import (
	"math"
	"sort"

	"launchdash/domain/launch"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// PayloadSummary holds summary statistics of the payload column
type PayloadSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`

	Shape PayloadShape `json:"shape"`
}

// SiteSummary counts launches and successes at one site
type SiteSummary struct {
	Site        string  `json:"site"`
	Launches    int     `json:"launches"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
}

// DatasetSummary feeds the summary panel and the CLI summary command
type DatasetSummary struct {
	Source      string         `json:"source"`
	Launches    int            `json:"launches"`
	Successes   int            `json:"successes"`
	Failures    int            `json:"failures"`
	SuccessRate float64        `json:"success_rate"`
	Sites       []SiteSummary  `json:"sites"`
	Payload     PayloadSummary `json:"payload"`
	// PayloadOutcomeCorrelation is the point-biserial correlation between payload
	// mass and the 0/1 outcome; 0 when either column is constant.
	PayloadOutcomeCorrelation float64 `json:"payload_outcome_correlation"`
}

// Summarize profiles the whole dataset
func Summarize(ds *launch.Dataset, source string) (DatasetSummary, error) {
	summary := DatasetSummary{Source: source, Launches: ds.Len()}
	if ds.Len() == 0 {
		return summary, nil
	}

	bySite := make(map[string]*SiteSummary)
	outcomes := make([]float64, 0, ds.Len())
	ds.Each(func(r launch.Record) {
		s, ok := bySite[r.Site]
		if !ok {
			s = &SiteSummary{Site: r.Site}
			bySite[r.Site] = s
		}
		s.Launches++
		if r.Outcome.IsSuccess() {
			s.Successes++
			summary.Successes++
		}
		outcomes = append(outcomes, float64(r.Outcome))
	})
	summary.Failures = summary.Launches - summary.Successes
	summary.SuccessRate = rate(summary.Successes, summary.Launches)

	for _, site := range ds.Sites() {
		s := bySite[site]
		s.SuccessRate = rate(s.Successes, s.Launches)
		summary.Sites = append(summary.Sites, *s)
	}

	payload, err := SummarizePayload(ds.PayloadMasses())
	if err != nil {
		return summary, err
	}
	summary.Payload = payload
	summary.PayloadOutcomeCorrelation = correlation(ds.PayloadMasses(), outcomes)

	return summary, nil
}

// SummarizePayload calculates the basic summary statistics of payload masses
func SummarizePayload(data []float64) (PayloadSummary, error) {
	var summary PayloadSummary
	var err error

	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	if summary.StdDev, err = stats.StandardDeviation(data); err != nil {
		return summary, err
	}
	// stats.Percentile rejects tiny samples, the empirical quantile does not
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	summary.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	summary.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	summary.Shape = shapeOf(data, summary)
	return summary, nil
}

func correlation(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
