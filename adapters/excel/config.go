package excel

import "strings"

// ColumnMapping names the input columns for each launch attribute.
// Each attribute lists accepted header spellings; matching ignores case and surrounding space.
type ColumnMapping struct {
	Site            []string `json:"site" yaml:"site"`
	PayloadMass     []string `json:"payload_mass" yaml:"payload_mass"`
	BoosterCategory []string `json:"booster_category" yaml:"booster_category"`
	Outcome         []string `json:"outcome" yaml:"outcome"`
	FlightNumber    []string `json:"flight_number" yaml:"flight_number"`
	BoosterVersion  []string `json:"booster_version" yaml:"booster_version"`
}

// DefaultColumnMapping matches the published launch CSV plus snake_case aliases
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Site:            []string{"Launch Site", "launch_site", "site"},
		PayloadMass:     []string{"Payload Mass (kg)", "payload_mass_kg", "payload_mass", "payload"},
		BoosterCategory: []string{"Booster Version Category", "booster_version_category", "booster_category", "booster"},
		Outcome:         []string{"class", "outcome", "success"},
		FlightNumber:    []string{"Flight Number", "flight_number"},
		BoosterVersion:  []string{"Booster Version", "booster_version"},
	}
}

// resolve returns the first header that matches one of the aliases
func resolve(headers []string, aliases []string) (string, bool) {
	for _, alias := range aliases {
		for _, header := range headers {
			if strings.EqualFold(strings.TrimSpace(header), strings.TrimSpace(alias)) {
				return header, true
			}
		}
	}
	return "", false
}
