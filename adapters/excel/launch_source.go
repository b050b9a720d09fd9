package excel

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"launchdash/domain/launch"
	"launchdash/internal/errors"
)

// FileSource loads launch records from a CSV or XLSX file
type FileSource struct {
	path    string
	mapping ColumnMapping
}

// NewFileSource creates a file-backed launch source using the default column mapping
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, mapping: DefaultColumnMapping()}
}

// WithMapping overrides the column mapping
func (s *FileSource) WithMapping(mapping ColumnMapping) *FileSource {
	s.mapping = mapping
	return s
}

// Describe implements ports.LaunchSource
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

// Load implements ports.LaunchSource. Every failure is a DATASET_LOAD error.
func (s *FileSource) Load(ctx context.Context) (*launch.Dataset, error) {
	data, err := NewDataReader(s.path).ReadData()
	if err != nil {
		return nil, errors.DatasetLoad(fmt.Sprintf("failed to read %s", s.path), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := RecordsFromRows(data, s.mapping)
	if err != nil {
		return nil, errors.DatasetLoad(fmt.Sprintf("failed to parse %s", s.path), err)
	}

	ds, err := launch.NewDataset(records)
	if err != nil {
		return nil, errors.DatasetLoad(fmt.Sprintf("invalid launch data in %s", s.path), err)
	}
	log.Printf("[FileSource] Loaded %d launches from %d sites (%s)", ds.Len(), len(ds.Sites()), s.path)
	return ds, nil
}

// RecordsFromRows maps spreadsheet rows onto launch records
func RecordsFromRows(data *Sheet, mapping ColumnMapping) ([]launch.Record, error) {
	siteCol, ok := resolve(data.Headers, mapping.Site)
	if !ok {
		return nil, fmt.Errorf("missing launch site column (tried %s)", strings.Join(mapping.Site, ", "))
	}
	massCol, ok := resolve(data.Headers, mapping.PayloadMass)
	if !ok {
		return nil, fmt.Errorf("missing payload mass column (tried %s)", strings.Join(mapping.PayloadMass, ", "))
	}
	categoryCol, ok := resolve(data.Headers, mapping.BoosterCategory)
	if !ok {
		return nil, fmt.Errorf("missing booster category column (tried %s)", strings.Join(mapping.BoosterCategory, ", "))
	}
	outcomeCol, ok := resolve(data.Headers, mapping.Outcome)
	if !ok {
		return nil, fmt.Errorf("missing outcome column (tried %s)", strings.Join(mapping.Outcome, ", "))
	}
	flightCol, hasFlight := resolve(data.Headers, mapping.FlightNumber)
	versionCol, hasVersion := resolve(data.Headers, mapping.BoosterVersion)

	records := make([]launch.Record, 0, len(data.Rows))
	for i, row := range data.Rows {
		line := data.Line(i)

		mass, err := strconv.ParseFloat(row.Get(massCol), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid payload mass %q", line, row.Get(massCol))
		}
		outcome, err := launch.ParseOutcome(row.Get(outcomeCol))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		record := launch.Record{
			Site:            row.Get(siteCol),
			PayloadMassKg:   mass,
			BoosterCategory: row.Get(categoryCol),
			Outcome:         outcome,
		}
		if flight := row.Get(flightCol); hasFlight && flight != "" {
			n, err := strconv.ParseFloat(flight, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid flight number %q", line, flight)
			}
			record.FlightNumber = int(n)
		}
		if hasVersion {
			record.BoosterVersion = row.Get(versionCol)
		}
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}
