// Package domain models per-region water-scarcity scoring and tanker relief
// estimation.
//
// # Water Stress Index
//
// Each region is scored with a composite Water Stress Index (WSI) built from
// three components, each clamped to [0,1] before weighting:
//
//	rainfall_deviation  = (normal_rainfall - actual_rainfall) / normal_rainfall
//	groundwater_decline = (100 - groundwater_level) / 100
//	population_factor   = population / max_population
//
//	WSI = 0.4·rainfall_deviation + 0.3·groundwater_decline + 0.3·population_factor
//
// The weights are fixed policy constants: rainfall deficit dominates, with
// groundwater depletion and demographic pressure weighted equally. Surplus
// rainfall cancels rainfall stress but never counts as negative stress — the
// deviation floors at zero. Reported component values and the WSI are rounded
// to four decimal places.
//
// max_population is caller-supplied per region, not derived from the batch.
// Cross-region comparability of population_factor therefore depends on the
// caller choosing one consistent denominator for the whole submission.
//
// # Stress Classification
//
//	WSI < 0.3          safe
//	0.3 <= WSI <= 0.6  moderate
//	WSI > 0.6          critical
//
// Both boundaries belong to "moderate": a WSI of exactly 0.3 or exactly 0.6
// classifies as moderate.
//
// # Tanker Relief Estimation
//
//	daily_need      = population × 135 L/person/day
//	available_water = population × groundwater_level × 0.5
//	deficit         = max(0, daily_need - available_water)
//	tankers_needed  = ceil(deficit / 10 000 L)
//
// 135 L/person/day is the planning norm for daily domestic need; 0.5 is a
// fixed calibration constant translating percent-of-capacity groundwater into
// usable litres per person. Any nonzero deficit yields at least one tanker.
//
// groundwater_level is clamped in the severity components but used raw here,
// so a level above 100 reduces the computed deficit further than the clamped
// severity score suggests. This matches the behavior the dashboard clients
// were built against; see the estimator tests.
//
// # Dispatch Priority
//
//	priority = 0.7·WSI + 0.3·population_factor
//
// A single ranking scalar: among equally severe regions the more populous one
// dispatches first, among equally populous regions the more severe one does.
// Ties keep submission order (the batch engine sorts stably).
package domain
