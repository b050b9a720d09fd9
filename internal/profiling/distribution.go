package profiling

import (
	"gonum.org/v1/gonum/stat"
)

// PayloadShape describes how payload masses are spread around the mean
type PayloadShape struct {
	Skewness float64 `json:"skewness"`
	// Kurtosis is the bias-corrected total kurtosis, 3 for a normal distribution
	Kurtosis float64 `json:"kurtosis"`
	Outliers int     `json:"outliers"`
}

// shapeOf computes the shape markers; sample moments need at least 3 (skewness)
// and 4 (kurtosis) masses and a non-zero spread
func shapeOf(data []float64, s PayloadSummary) PayloadShape {
	if s.StdDev == 0 {
		return PayloadShape{}
	}
	shape := PayloadShape{Outliers: outliers(data, s.Q25, s.Q75)}
	if len(data) >= 3 {
		shape.Skewness = stat.Skew(data, nil)
	}
	if len(data) >= 4 {
		shape.Kurtosis = stat.ExKurtosis(data, nil) + 3
	}
	return shape
}

// outliers counts masses outside 1.5 IQR of the quartiles
func outliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}
