// Package viewstate models the user-selectable dashboard state and its pure update rules.
package viewstate

import (
	"fmt"
	"math"

	"launchdash/domain/launch"
	"launchdash/internal/errors"
)

// PayloadRange is a closed payload-mass interval in kilograms
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// NewPayloadRange validates low <= high and finite bounds
func NewPayloadRange(low, high float64) (PayloadRange, error) {
	r := PayloadRange{Low: low, High: high}
	if err := r.Validate(); err != nil {
		return PayloadRange{}, err
	}
	return r, nil
}

// Validate checks the range invariant
func (r PayloadRange) Validate() error {
	if !finite(r.Low) || !finite(r.High) {
		return errors.InvalidInput("payload range bounds must be finite numbers")
	}
	if r.Low > r.High {
		return errors.InvalidInput(fmt.Sprintf("payload range low %.0f exceeds high %.0f", r.Low, r.High))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Contains reports whether mass lies in [Low, High], inclusive at both ends
func (r PayloadRange) Contains(mass float64) bool {
	return mass >= r.Low && mass <= r.High
}

// String formats the range for titles and logs
func (r PayloadRange) String() string {
	return fmt.Sprintf("[%.0f, %.0f] kg", r.Low, r.High)
}

// State is the pair (selected site, payload range) that drives both charts
type State struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// Initial returns the startup state: every site, full observed payload range
func Initial(ds *launch.Dataset) State {
	low, high := ds.PayloadBounds()
	return State{Site: launch.AllSites, Payload: PayloadRange{Low: low, High: high}}
}

// AllSites reports whether the sentinel is selected
func (s State) AllSites() bool {
	return s.Site == launch.AllSites
}

// Event is a UI input that changes the state
type Event interface {
	// Affects reports which views must be recomputed after the event
	Affects() Views
}

// Views is a bit set of dashboard views
type Views uint8

const (
	ProportionView Views = 1 << iota
	DistributionView
)

// Has reports whether v includes view
func (v Views) Has(view Views) bool {
	return v&view != 0
}

// SelectSite changes the site selector
type SelectSite struct {
	Site string `json:"site"`
}

// Affects implements Event; both charts read the site
func (SelectSite) Affects() Views { return ProportionView | DistributionView }

// SetPayloadRange changes the payload slider
type SetPayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Affects implements Event; only the distribution chart reads the range
func (SetPayloadRange) Affects() Views { return DistributionView }

// Reduce applies an event to a state. On error the original state is returned unchanged.
func Reduce(state State, event Event, catalog *launch.Catalog) (State, error) {
	switch e := event.(type) {
	case SelectSite:
		if !catalog.Contains(e.Site) {
			return state, errors.InvalidInput(fmt.Sprintf("unknown launch site %q", e.Site))
		}
		next := state
		next.Site = e.Site
		return next, nil
	case SetPayloadRange:
		r, err := NewPayloadRange(e.Low, e.High)
		if err != nil {
			return state, err
		}
		next := state
		next.Payload = r
		return next, nil
	default:
		return state, errors.InvalidInput(fmt.Sprintf("unsupported event %T", event))
	}
}
