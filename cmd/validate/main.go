// Command validate performs integrity checks across the analysis fixtures
// produced by genregions (or captured from a live service): it verifies that
// the scored analysis matches a fresh re-score of the region inputs, that the
// scoring invariants hold, and that every record satisfies the response
// schema the dashboard clients rely on.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -regions-json data/mock/regions_vidarbha.json \
//	  -analysis-json data/mock/regions_vidarbha_scored.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/drought-relief-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	regionsJSON := flag.String("regions-json", "", "path to the region input fixture")
	analysisJSON := flag.String("analysis-json", "", "path to the scored analysis fixture")
	flag.Parse()

	if *regionsJSON == "" || *analysisJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*regionsJSON, *analysisJSON); code != 0 {
		os.Exit(code)
	}
}

func run(regionsPath, analysisPath string) int {
	fmt.Println("=== Drought Analysis Integrity Validation ===")
	fmt.Println()

	regions, err := loadJSON[domain.RegionInput](regionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load regions: %v\n", err)
		return 1
	}

	results, err := loadJSON[domain.RegionResult](analysisPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load analysis: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateParity(regions, results),
		validateRescoring(regions, results),
		validateInvariants(results),
		validateSchema(results),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d region inputs, %d scored results\n", len(regions), len(results))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Parity ──
// Every submitted region appears in the analysis exactly once, and nothing else does.

func validateParity(regions []domain.RegionInput, results []domain.RegionResult) *phase {
	p := &phase{name: "Phase 1: Input/Output Parity"}

	if len(regions) != len(results) {
		p.errorf("count: %d inputs, %d results", len(regions), len(results))
	}

	inputIDs := map[string]int{}
	for i := range regions {
		inputIDs[regions[i].RegionID]++
	}
	resultIDs := map[string]int{}
	for i := range results {
		resultIDs[results[i].RegionID]++
	}

	for id, n := range inputIDs {
		if resultIDs[id] != n {
			p.errorf("region %s: %d inputs but %d results", id, n, resultIDs[id])
		}
	}
	for id := range resultIDs {
		if inputIDs[id] == 0 {
			p.errorf("region %s: present in analysis but not in inputs", id)
		}
	}
	return p
}

// ── Phase 2: Re-scoring parity ──
// Re-running the scorer on each input must reproduce the stored result.

func validateRescoring(regions []domain.RegionInput, results []domain.RegionResult) *phase {
	p := &phase{name: "Phase 2: Re-scoring Parity"}

	// First occurrence wins on duplicate IDs, matching dashboard lookups.
	byID := map[string]*domain.RegionResult{}
	for i := range results {
		if _, exists := byID[results[i].RegionID]; !exists {
			byID[results[i].RegionID] = &results[i]
		}
	}

	for i := range regions {
		expected := domain.AnalyzeRegion(regions[i])
		actual, ok := byID[regions[i].RegionID]
		if !ok {
			p.errorf("region %s: missing from analysis", regions[i].RegionID)
			continue
		}
		compareResults(p, expected, actual)
	}
	return p
}

func compareResults(p *phase, expected domain.RegionResult, actual *domain.RegionResult) {
	id := expected.RegionID

	if actual.RegionName != expected.RegionName {
		p.errorf("%s: region_name: expected %q, got %q", id, expected.RegionName, actual.RegionName)
	}
	if actual.Population != expected.Population {
		p.errorf("%s: population: expected %d, got %d", id, expected.Population, actual.Population)
	}
	if !floatEq(actual.WSI, expected.WSI) {
		p.errorf("%s: wsi: expected %g, got %g", id, expected.WSI, actual.WSI)
	}
	if actual.StressLevel != expected.StressLevel {
		p.errorf("%s: stress_level: expected %q, got %q", id, expected.StressLevel, actual.StressLevel)
	}
	if !floatEq(actual.Components.RainfallDeviation, expected.Components.RainfallDeviation) ||
		!floatEq(actual.Components.GroundwaterDecline, expected.Components.GroundwaterDecline) ||
		!floatEq(actual.Components.PopulationFactor, expected.Components.PopulationFactor) {
		p.errorf("%s: components: expected %+v, got %+v", id, expected.Components, actual.Components)
	}
	if !floatEq(actual.Allocation.DeficitLitres, expected.Allocation.DeficitLitres) ||
		actual.Allocation.TankersNeeded != expected.Allocation.TankersNeeded {
		p.errorf("%s: allocation: expected %+v, got %+v", id, expected.Allocation, actual.Allocation)
	}
	if !floatEq(actual.PriorityScore, expected.PriorityScore) {
		p.errorf("%s: priority_score: expected %g, got %g", id, expected.PriorityScore, actual.PriorityScore)
	}
}

// ── Phase 3: Invariants ──
// Scoring-model invariants that hold for any valid analysis.

func validateInvariants(results []domain.RegionResult) *phase {
	p := &phase{name: "Phase 3: Scoring Invariants"}

	for i := range results {
		r := &results[i]

		for name, v := range map[string]float64{
			"wsi":                 r.WSI,
			"rainfall_deviation":  r.Components.RainfallDeviation,
			"groundwater_decline": r.Components.GroundwaterDecline,
			"population_factor":   r.Components.PopulationFactor,
		} {
			if v < 0 || v > 1 {
				p.errorf("%s: %s %g outside [0,1]", r.RegionID, name, v)
			}
		}

		if r.Allocation.DeficitLitres < 0 {
			p.errorf("%s: negative deficit %g", r.RegionID, r.Allocation.DeficitLitres)
		}
		wantTankers := 0
		if r.Allocation.DeficitLitres > 0 {
			wantTankers = int(math.Ceil(r.Allocation.DeficitLitres / 10000))
		}
		if r.Allocation.TankersNeeded != wantTankers {
			p.errorf("%s: tankers_needed %d, expected %d for deficit %g",
				r.RegionID, r.Allocation.TankersNeeded, wantTankers, r.Allocation.DeficitLitres)
		}

		if i > 0 && results[i-1].PriorityScore < r.PriorityScore {
			p.errorf("ordering: %s (%g) ranked after %s (%g)",
				results[i-1].RegionID, results[i-1].PriorityScore, r.RegionID, r.PriorityScore)
		}
	}
	return p
}

// ── Phase 4: Schema Alignment ──
// Field values the dashboard response schema requires.

var schemaStressLevels = map[domain.StressLevel]bool{
	domain.StressSafe:     true,
	domain.StressModerate: true,
	domain.StressCritical: true,
}

func validateSchema(results []domain.RegionResult) *phase {
	p := &phase{name: "Phase 4: Schema Alignment"}

	for i := range results {
		r := &results[i]
		pf := func(format string, args ...any) {
			p.errorf("record %d (%s): "+format, append([]any{i, r.RegionID}, args...)...)
		}

		if r.RegionID == "" {
			pf("region_id is empty")
		}
		if r.RegionName == "" {
			pf("region_name is empty")
		}
		if r.Population <= 0 {
			pf("population %d is not positive", r.Population)
		}
		if !schemaStressLevels[r.StressLevel] {
			pf("stress_level %q not in {safe, moderate, critical}", r.StressLevel)
		}
		if r.Allocation.TankersNeeded < 0 {
			pf("tankers_needed %d is negative", r.Allocation.TankersNeeded)
		}
	}
	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
