package testkit

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"launchdash/domain/launch"
)

// LaunchGeneratorConfig configures the synthetic launch generator
type LaunchGeneratorConfig struct {
	LaunchCount    int      `json:"launch_count"`
	Sites          []string `json:"sites"`
	MaxPayloadKg   float64  `json:"max_payload_kg"`
	Seed           int64    `json:"seed"`
	SuccessRateMin float64  `json:"success_rate_min"`
	SuccessRateMax float64  `json:"success_rate_max"`
}

// DefaultLaunchConfig mirrors the shape of the public launch table: 56 flights, four pads
func DefaultLaunchConfig() LaunchGeneratorConfig {
	return LaunchGeneratorConfig{
		LaunchCount:    56,
		Sites:          []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"},
		MaxPayloadKg:   9600,
		Seed:           42,
		SuccessRateMin: 0.2,
		SuccessRateMax: 0.9,
	}
}

// boosterEras are flown in order; later eras lift more and fail less
var boosterEras = []struct {
	category string
	share    float64
	payload  float64
}{
	{"v1.0", 0.08, 0.05},
	{"v1.1", 0.27, 0.35},
	{"FT", 0.40, 0.55},
	{"B4", 0.15, 0.70},
	{"B5", 0.10, 0.60},
}

// LaunchGenerator produces a deterministic synthetic launch history
type LaunchGenerator struct {
	config LaunchGeneratorConfig
	rng    *rand.Rand
}

// NewLaunchGenerator creates a generator; the same seed always yields the same table
func NewLaunchGenerator(config LaunchGeneratorConfig) *LaunchGenerator {
	return &LaunchGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRecords returns LaunchCount records in flight order
func (g *LaunchGenerator) GenerateRecords() ([]launch.Record, error) {
	if g.config.LaunchCount <= 0 {
		return nil, fmt.Errorf("launch count must be positive, got %d", g.config.LaunchCount)
	}
	if len(g.config.Sites) == 0 {
		return nil, fmt.Errorf("at least one launch site is required")
	}

	records := make([]launch.Record, 0, g.config.LaunchCount)
	for i := 0; i < g.config.LaunchCount; i++ {
		progress := float64(i) / float64(g.config.LaunchCount)
		era := eraAt(progress)

		// Payload clusters around the era's typical lift with some spread; early flights
		// sometimes carried no customer payload at all.
		mass := g.config.MaxPayloadKg * (boosterEras[era].payload + g.rng.NormFloat64()*0.15)
		if i < 2 {
			mass = 0
		}
		mass = math.Round(math.Max(0, math.Min(g.config.MaxPayloadKg, mass)))

		successRate := g.config.SuccessRateMin + (g.config.SuccessRateMax-g.config.SuccessRateMin)*progress
		outcome := launch.Failure
		if g.rng.Float64() < successRate {
			outcome = launch.Success
		}

		site := g.config.Sites[g.rng.Intn(len(g.config.Sites))]
		if i == 0 {
			site = g.config.Sites[0]
		}

		category := boosterEras[era].category
		records = append(records, launch.Record{
			FlightNumber:    i + 1,
			Site:            site,
			PayloadMassKg:   mass,
			BoosterVersion:  fmt.Sprintf("F9 %s B%04d", category, 1000+i),
			BoosterCategory: category,
			Outcome:         outcome,
		})
	}
	return records, nil
}

func eraAt(progress float64) int {
	cumulative := 0.0
	for i, era := range boosterEras {
		cumulative += era.share
		if progress < cumulative {
			return i
		}
	}
	return len(boosterEras) - 1
}

// SyntheticSource serves generated launches when no data file or database is configured
type SyntheticSource struct {
	config LaunchGeneratorConfig
}

// NewSyntheticSource creates a launch source backed by the generator
func NewSyntheticSource(config LaunchGeneratorConfig) *SyntheticSource {
	return &SyntheticSource{config: config}
}

// Describe implements ports.LaunchSource
func (s *SyntheticSource) Describe() string {
	return fmt.Sprintf("synthetic:seed=%d", s.config.Seed)
}

// Load implements ports.LaunchSource
func (s *SyntheticSource) Load(ctx context.Context) (*launch.Dataset, error) {
	records, err := NewLaunchGenerator(s.config).GenerateRecords()
	if err != nil {
		return nil, err
	}
	return launch.NewDataset(records)
}
