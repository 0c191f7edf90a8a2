package domain

import (
	"time"

	"github.com/google/uuid"
)

// StressLevel is the ordinal drought-stress category derived from the WSI.
type StressLevel string

const (
	StressSafe     StressLevel = "safe"
	StressModerate StressLevel = "moderate"
	StressCritical StressLevel = "critical"
)

// RegionInput carries the raw measurements submitted for one region, ward, or
// village. It is immutable once received; validation tags encode the scoring
// preconditions enforced at the transport boundary.
type RegionInput struct {
	RegionID   string `json:"region_id" validate:"required"`
	RegionName string `json:"region_name" validate:"required"`
	Population int    `json:"population" validate:"gt=0"`

	// NormalRainfall is the historical average in mm and must be positive —
	// it is the denominator of the rainfall deviation.
	NormalRainfall float64 `json:"normal_rainfall" validate:"gt=0"`

	// ActualRainfall is this period's rainfall in mm. Zero is a valid (and
	// severe) observation; values above NormalRainfall are also valid.
	ActualRainfall float64 `json:"actual_rainfall" validate:"gte=0"`

	// GroundwaterLevel is percent of capacity, expected 0-100. Out-of-range
	// values are accepted and clamped during severity scoring.
	GroundwaterLevel float64 `json:"groundwater_level"`

	// MaxPopulation normalizes population pressure across the batch. It is
	// trusted per region; callers must supply one consistent value.
	MaxPopulation int `json:"max_population" validate:"gt=0"`
}

// StressComponents holds the three normalized stress inputs to the WSI,
// each already clamped to [0,1] and rounded to four decimals.
type StressComponents struct {
	RainfallDeviation  float64 `json:"rainfall_deviation"`
	GroundwaterDecline float64 `json:"groundwater_decline"`
	PopulationFactor   float64 `json:"population_factor"`
}

// TankerAllocation quantifies the daily relief a region requires.
type TankerAllocation struct {
	DailyNeedLitres      float64 `json:"daily_need_litres"`
	AvailableWaterLitres float64 `json:"available_water_litres"`
	DeficitLitres        float64 `json:"deficit_litres"`
	TankersNeeded        int     `json:"tankers_needed"`
}

// RegionResult is the enriched, immutable scoring record for one region.
// JSON field names match the dashboard contract.
type RegionResult struct {
	RegionID      string           `json:"region_id"`
	RegionName    string           `json:"region_name"`
	Population    int              `json:"population"`
	WSI           float64          `json:"wsi"`
	StressLevel   StressLevel      `json:"stress_level"`
	Components    StressComponents `json:"components"`
	Allocation    TankerAllocation `json:"tanker_allocation"`
	PriorityScore float64          `json:"priority_score"`
}

// Batch is one complete scoring run: the ordered results of a single
// submission, sorted by priority score descending. A batch is never mutated
// after construction; a newer batch supersedes it wholesale.
type Batch struct {
	ID       string         `json:"batch_id"`
	ScoredAt time.Time      `json:"scored_at"`
	Results  []RegionResult `json:"regions"`
}

// NewBatch wraps ordered results with a fresh batch identity. The timestamp
// comes from the package clock so fixtures and tests stay reproducible.
func NewBatch(results []RegionResult) Batch {
	return Batch{
		ID:       uuid.NewString(),
		ScoredAt: clock.Now().UTC(),
		Results:  results,
	}
}
