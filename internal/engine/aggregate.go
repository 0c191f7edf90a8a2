package engine

import (
	"math"

	"github.com/couchcryptid/drought-relief-service/internal/domain"
)

// topRegionCount caps the dashboard's most-critical list.
const topRegionCount = 5

// Summary is the read-side KPI view over one batch.
type Summary struct {
	TotalRegions       int
	CriticalCount      int
	ModerateCount      int
	SafeCount          int
	TotalTankersNeeded int
	AverageWSI         float64
	TotalDeficitLitres float64

	// TopRegions are the first entries of the already priority-ordered
	// batch; no re-sort happens here.
	TopRegions []domain.RegionResult
}

// DispatchRoute is one stop in the tanker dispatch plan. JSON names match the
// dispatch-planning client contract and the published Kafka payload.
type DispatchRoute struct {
	DispatchOrder     int                `json:"dispatch_order"`
	RegionID          string             `json:"region_id"`
	RegionName        string             `json:"region_name"`
	StressLevel       domain.StressLevel `json:"stress_level"`
	PriorityScore     float64            `json:"priority_score"`
	TankersToDispatch int                `json:"tankers_to_dispatch"`
	DeficitLitres     float64            `json:"deficit_litres"`
	Population        int                `json:"population"`
}

// Summarize derives the KPI view from a batch snapshot. It never mutates the
// batch; a nil or empty batch yields a zero summary.
func Summarize(b *domain.Batch) Summary {
	var s Summary
	if b == nil || len(b.Results) == 0 {
		return s
	}

	var wsiSum float64
	for i := range b.Results {
		r := &b.Results[i]
		switch r.StressLevel {
		case domain.StressCritical:
			s.CriticalCount++
		case domain.StressModerate:
			s.ModerateCount++
		case domain.StressSafe:
			s.SafeCount++
		}
		s.TotalTankersNeeded += r.Allocation.TankersNeeded
		s.TotalDeficitLitres += r.Allocation.DeficitLitres
		wsiSum += r.WSI
	}

	s.TotalRegions = len(b.Results)
	s.AverageWSI = round4(wsiSum / float64(len(b.Results)))
	s.TotalDeficitLitres = round2(s.TotalDeficitLitres)
	s.TopRegions = b.Results[:min(topRegionCount, len(b.Results))]
	return s
}

// DispatchPlan filters a batch to the regions that actually need tankers,
// preserving priority order, and assigns contiguous 1-based dispatch order.
func DispatchPlan(b *domain.Batch) []DispatchRoute {
	if b == nil {
		return nil
	}

	routes := make([]DispatchRoute, 0, len(b.Results))
	for i := range b.Results {
		r := &b.Results[i]
		if r.Allocation.TankersNeeded <= 0 {
			continue
		}
		routes = append(routes, DispatchRoute{
			DispatchOrder:     len(routes) + 1,
			RegionID:          r.RegionID,
			RegionName:        r.RegionName,
			StressLevel:       r.StressLevel,
			PriorityScore:     r.PriorityScore,
			TankersToDispatch: r.Allocation.TankersNeeded,
			DeficitLitres:     r.Allocation.DeficitLitres,
			Population:        r.Population,
		})
	}
	return routes
}

// TotalTankers sums the tankers across a dispatch plan.
func TotalTankers(routes []DispatchRoute) int {
	total := 0
	for i := range routes {
		total += routes[i].TankersToDispatch
	}
	return total
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
