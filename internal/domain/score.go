package domain

import "math"

// Model constants. These are policy and calibration figures, not tunables;
// changing any of them changes the meaning of every stored score.
const (
	weightRainfall    = 0.4
	weightGroundwater = 0.3
	weightPopulation  = 0.3

	priorityWeightWSI        = 0.7
	priorityWeightPopulation = 0.3

	stressModerateFloor = 0.3
	stressCriticalFloor = 0.6

	litresPerPersonPerDay = 135.0
	availabilityFactor    = 0.5
	tankerCapacityLitres  = 10000.0
)

// ScoreSeverity computes the three clamped stress components and the
// composite WSI for one region. The returned components are rounded to four
// decimals for reporting; the WSI is computed from the unrounded values and
// then rounded to four decimals itself.
//
// Preconditions (NormalRainfall > 0, Population > 0, MaxPopulation > 0) are
// the caller's contract, enforced by ValidateBatch before scoring.
func ScoreSeverity(in RegionInput) (StressComponents, float64) {
	rainfallDeviation := clamp01((in.NormalRainfall - in.ActualRainfall) / in.NormalRainfall)
	groundwaterDecline := clamp01((100 - in.GroundwaterLevel) / 100)
	populationFactor := clamp01(float64(in.Population) / float64(in.MaxPopulation))

	wsi := weightRainfall*rainfallDeviation +
		weightGroundwater*groundwaterDecline +
		weightPopulation*populationFactor

	components := StressComponents{
		RainfallDeviation:  round4(rainfallDeviation),
		GroundwaterDecline: round4(groundwaterDecline),
		PopulationFactor:   round4(populationFactor),
	}
	return components, round4(wsi)
}

// ClassifyStress maps a WSI onto the three-level stress scale. Total over the
// real line; both the 0.3 and 0.6 boundaries classify as moderate.
func ClassifyStress(wsi float64) StressLevel {
	switch {
	case wsi < stressModerateFloor:
		return StressSafe
	case wsi <= stressCriticalFloor:
		return StressModerate
	default:
		return StressCritical
	}
}

// EstimateRelief predicts the daily tanker requirement for a region.
// groundwaterLevel is used as supplied, without the clamping applied during
// severity scoring.
func EstimateRelief(population int, groundwaterLevel float64) TankerAllocation {
	dailyNeed := float64(population) * litresPerPersonPerDay
	availableWater := float64(population) * groundwaterLevel * availabilityFactor
	deficit := math.Max(0, dailyNeed-availableWater)

	return TankerAllocation{
		DailyNeedLitres:      round2(dailyNeed),
		AvailableWaterLitres: round2(availableWater),
		DeficitLitres:        round2(deficit),
		TankersNeeded:        int(math.Ceil(deficit / tankerCapacityLitres)),
	}
}

// PriorityScore combines severity with demographic pressure into the single
// dispatch ranking scalar.
func PriorityScore(wsi, populationFactor float64) float64 {
	return round4(priorityWeightWSI*wsi + priorityWeightPopulation*populationFactor)
}

// AnalyzeRegion runs the full scoring chain for one region. Pure: no
// cross-region state, same input always yields the same result.
func AnalyzeRegion(in RegionInput) RegionResult {
	components, wsi := ScoreSeverity(in)

	return RegionResult{
		RegionID:      in.RegionID,
		RegionName:    in.RegionName,
		Population:    in.Population,
		WSI:           wsi,
		StressLevel:   ClassifyStress(wsi),
		Components:    components,
		Allocation:    EstimateRelief(in.Population, in.GroundwaterLevel),
		PriorityScore: PriorityScore(wsi, components.PopulationFactor),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
