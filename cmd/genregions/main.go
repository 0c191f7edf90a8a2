// Command genregions generates mock data fixtures for the analysis test
// suites and demo dashboards: a region-input JSON file and the scored
// analysis the service produces for it. It runs the actual scoring engine so
// the fixture always matches real service behavior.
//
// Usage:
//
//	go run ./cmd/genregions \
//	  -regions-out data/mock/regions_vidarbha.json \
//	  -analysis-out data/mock/regions_vidarbha_scored.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/drought-relief-service/internal/domain"
	"github.com/couchcryptid/drought-relief-service/internal/engine"
	"github.com/couchcryptid/drought-relief-service/internal/observability"
)

// baselineRegions is a hand-curated district set spanning all three stress
// categories, a zero-tanker region, and a priority tie. max_population is the
// largest population in the set, as the API contract expects.
var baselineRegions = []domain.RegionInput{
	{RegionID: "R001", RegionName: "Nagpur East", Population: 45000, NormalRainfall: 800, ActualRainfall: 320, GroundwaterLevel: 35, MaxPopulation: 100000},
	{RegionID: "R002", RegionName: "Wardha Rural", Population: 12000, NormalRainfall: 750, ActualRainfall: 600, GroundwaterLevel: 65, MaxPopulation: 100000},
	{RegionID: "R003", RegionName: "Yavatmal Central", Population: 100000, NormalRainfall: 900, ActualRainfall: 150, GroundwaterLevel: 12, MaxPopulation: 100000},
	{RegionID: "R004", RegionName: "Amravati North", Population: 68000, NormalRainfall: 820, ActualRainfall: 410, GroundwaterLevel: 28, MaxPopulation: 100000},
	{RegionID: "R005", RegionName: "Chandrapur Lakeside", Population: 9500, NormalRainfall: 1100, ActualRainfall: 1250, GroundwaterLevel: 290, MaxPopulation: 100000},
	{RegionID: "R006", RegionName: "Akola West", Population: 30000, NormalRainfall: 700, ActualRainfall: 455, GroundwaterLevel: 50, MaxPopulation: 100000},
	{RegionID: "R007", RegionName: "Akola East", Population: 30000, NormalRainfall: 700, ActualRainfall: 455, GroundwaterLevel: 50, MaxPopulation: 100000},
	{RegionID: "R008", RegionName: "Buldhana Plateau", Population: 22000, NormalRainfall: 640, ActualRainfall: 610, GroundwaterLevel: 78, MaxPopulation: 100000},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	regionsOut := flag.String("regions-out", "", "output path for the region input fixture")
	analysisOut := flag.String("analysis-out", "", "output path for the scored analysis fixture")
	flag.Parse()

	if *regionsOut == "" || *analysisOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -regions-out, -analysis-out")
	}

	eng := engine.New(nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting(),
	)
	batch, err := eng.ScoreBatch(context.Background(), baselineRegions)
	if err != nil {
		return fmt.Errorf("scoring baseline regions: %w", err)
	}

	if err := writeJSON(*regionsOut, baselineRegions); err != nil {
		return err
	}
	if err := writeJSON(*analysisOut, batch.Results); err != nil {
		return err
	}

	log.Printf("wrote %d regions to %s", len(baselineRegions), *regionsOut)
	log.Printf("wrote %d scored results to %s", len(batch.Results), *analysisOut)
	return nil
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
