package launch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AllSites is the sentinel selector value meaning "every launch site"
const AllSites = "ALL"

// Outcome is the binary launch result, stored as the dataset's class flag
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// String returns the display label of the outcome
func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// IsSuccess reports whether the launch succeeded
func (o Outcome) IsSuccess() bool {
	return o == Success
}

// ParseOutcome accepts 1/0, 1.0/0.0, true/false and success/failure
func ParseOutcome(raw string) (Outcome, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "1", "true", "success", "yes":
		return Success, nil
	case "0", "false", "failure", "fail", "no":
		return Failure, nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		switch f {
		case 1:
			return Success, nil
		case 0:
			return Failure, nil
		}
	}
	return Failure, fmt.Errorf("invalid outcome %q", raw)
}

// Record is one launch attempt. Records are values and never change after loading.
type Record struct {
	FlightNumber    int     `json:"flight_number,omitempty" db:"flight_number"`
	Site            string  `json:"site" db:"site"`
	PayloadMassKg   float64 `json:"payload_mass_kg" db:"payload_mass_kg"`
	BoosterVersion  string  `json:"booster_version,omitempty" db:"booster_version"`
	BoosterCategory string  `json:"booster_category" db:"booster_category"`
	Outcome         Outcome `json:"class" db:"outcome"`
}

// Validate checks the record-level invariants
func (r Record) Validate() error {
	if strings.TrimSpace(r.Site) == "" {
		return fmt.Errorf("launch site is empty")
	}
	if math.IsNaN(r.PayloadMassKg) || math.IsInf(r.PayloadMassKg, 0) {
		return fmt.Errorf("payload mass is not a finite number")
	}
	if r.PayloadMassKg < 0 {
		return fmt.Errorf("payload mass %.2f is negative", r.PayloadMassKg)
	}
	if r.Outcome != Success && r.Outcome != Failure {
		return fmt.Errorf("outcome %d is not 0 or 1", r.Outcome)
	}
	return nil
}
