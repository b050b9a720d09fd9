package launch

import "fmt"

// Dataset is the ordered, read-only launch table shared by every view.
// It is safe for concurrent readers because nothing mutates it after NewDataset.
type Dataset struct {
	records []Record
	sites   []string
	minMass float64
	maxMass float64
}

// NewDataset validates and copies the records
func NewDataset(records []Record) (*Dataset, error) {
	ds := &Dataset{records: make([]Record, len(records))}
	seen := make(map[string]bool)

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		ds.records[i] = r

		if !seen[r.Site] {
			seen[r.Site] = true
			ds.sites = append(ds.sites, r.Site)
		}
		if i == 0 || r.PayloadMassKg < ds.minMass {
			ds.minMass = r.PayloadMassKg
		}
		if i == 0 || r.PayloadMassKg > ds.maxMass {
			ds.maxMass = r.PayloadMassKg
		}
	}

	return ds, nil
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in load order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying the table
func (d *Dataset) Each(fn func(Record)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Sites returns the distinct site identifiers in first-appearance order
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HasSite reports whether any record was launched from site
func (d *Dataset) HasSite(site string) bool {
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// PayloadBounds returns the observed min and max payload mass; (0, 0) when empty
func (d *Dataset) PayloadBounds() (float64, float64) {
	return d.minMass, d.maxMass
}

// PayloadMasses returns the payload column in load order
func (d *Dataset) PayloadMasses() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = r.PayloadMassKg
	}
	return out
}

// SuccessCount returns the number of successful launches in the whole table
func (d *Dataset) SuccessCount() int {
	n := 0
	for _, r := range d.records {
		if r.Outcome.IsSuccess() {
			n++
		}
	}
	return n
}
