package launch

import (
	"fmt"
	"strings"
)

// SiteOption is one entry of the site selector
type SiteOption struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Catalog is the fixed enumerated set of selectable launch sites
type Catalog struct {
	sites []SiteOption
}

// DefaultSites are the four pads present in the reference launch dataset
var DefaultSites = []SiteOption{
	{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
	{Label: "CCAFS SLC-40", Value: "CCAFS SLC-40"},
	{Label: "KSC LC-39A", Value: "KSC LC-39A"},
	{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
}

// NewCatalog builds a catalog; labels default to the value, duplicates and the sentinel are rejected
func NewCatalog(options []SiteOption) (*Catalog, error) {
	c := &Catalog{}
	seen := make(map[string]bool)
	for _, opt := range options {
		value := strings.TrimSpace(opt.Value)
		if value == "" {
			return nil, fmt.Errorf("site option %q has an empty value", opt.Label)
		}
		if strings.EqualFold(value, AllSites) {
			return nil, fmt.Errorf("site value %q is reserved", AllSites)
		}
		if seen[value] {
			return nil, fmt.Errorf("duplicate site value %q", value)
		}
		seen[value] = true

		label := strings.TrimSpace(opt.Label)
		if label == "" {
			label = value
		}
		c.sites = append(c.sites, SiteOption{Label: label, Value: value})
	}
	return c, nil
}

// DefaultCatalog returns the catalog of DefaultSites
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog(DefaultSites)
	return c
}

// Options returns the selector options with "All Sites" first
func (c *Catalog) Options() []SiteOption {
	out := make([]SiteOption, 0, len(c.sites)+1)
	out = append(out, SiteOption{Label: "All Sites", Value: AllSites})
	return append(out, c.sites...)
}

// Sites returns the concrete site values without the sentinel
func (c *Catalog) Sites() []string {
	out := make([]string, len(c.sites))
	for i, s := range c.sites {
		out[i] = s.Value
	}
	return out
}

// Contains reports whether value is a known site or the sentinel
func (c *Catalog) Contains(value string) bool {
	if value == AllSites {
		return true
	}
	for _, s := range c.sites {
		if s.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label for a selector value
func (c *Catalog) Label(value string) string {
	if value == AllSites {
		return "All Sites"
	}
	for _, s := range c.sites {
		if s.Value == value {
			return s.Label
		}
	}
	return value
}

// Extend returns a catalog that also lists every dataset site missing from c,
// along with the values that had to be added
func (c *Catalog) Extend(ds *Dataset) (*Catalog, []string) {
	out := &Catalog{sites: append([]SiteOption(nil), c.sites...)}
	var added []string
	for _, site := range ds.Sites() {
		if !out.Contains(site) {
			out.sites = append(out.sites, SiteOption{Label: site, Value: site})
			added = append(added, site)
		}
	}
	return out, added
}
