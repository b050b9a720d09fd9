package app

import (
	"log"
	"sync"

	"launchdash/domain/figure"
	"launchdash/domain/launch"
	"launchdash/domain/viewstate"
	"launchdash/internal/errors"
)

// Snapshot is the full dashboard as seen by one session
type Snapshot struct {
	State        viewstate.State `json:"state"`
	Proportion   figure.Figure   `json:"proportion"`
	Distribution figure.Figure   `json:"distribution"`
}

// Update carries the new state and only the figures that had to be recomputed
type Update struct {
	State        viewstate.State `json:"state"`
	Proportion   *figure.Figure  `json:"proportion,omitempty"`
	Distribution *figure.Figure  `json:"distribution,omitempty"`
}

// Controller owns one session's view-state and recomputes views on each event.
// Events are applied one at a time; readers always see a fully applied state.
type Controller struct {
	dataset *launch.Dataset
	catalog *launch.Catalog

	mu    sync.Mutex
	state viewstate.State
}

// NewController starts at the initial state for the dataset
func NewController(ds *launch.Dataset, catalog *launch.Catalog) *Controller {
	return &Controller{
		dataset: ds,
		catalog: catalog,
		state:   viewstate.Initial(ds),
	}
}

// State returns the current view-state
func (c *Controller) State() viewstate.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot recomputes both views for the current state
func (c *Controller) Snapshot() Snapshot {
	state := c.State()
	return Snapshot{
		State:        state,
		Proportion:   ProportionView(c.dataset, state.Site),
		Distribution: DistributionView(c.dataset, state),
	}
}

// Apply reduces the event into the state and recomputes the affected views.
// A rejected event leaves the state untouched.
func (c *Controller) Apply(event viewstate.Event) (Update, error) {
	c.mu.Lock()
	next, err := viewstate.Reduce(c.state, event, c.catalog)
	if err != nil {
		c.mu.Unlock()
		log.Printf("[Controller] Rejected %T: %v", event, err)
		return Update{State: next}, errors.Wrap(err, "apply view event")
	}
	c.state = next
	c.mu.Unlock()

	update := Update{State: next}
	affects := event.Affects()
	if affects.Has(viewstate.ProportionView) {
		fig := ProportionView(c.dataset, next.Site)
		update.Proportion = &fig
	}
	if affects.Has(viewstate.DistributionView) {
		fig := DistributionView(c.dataset, next)
		update.Distribution = &fig
	}
	return update, nil
}
