// Package params merges the compiled-in step defaults with the site's
// parameter overrides into the effective constraints used by planning and
// estimates.
package params

import (
	"encoding/json"
	"fmt"
	"strconv"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/storage"
)

// Effective are the resolved constraints for one step. Capacity is nil when
// the override's curve text is malformed; lookups then report 0 and callers
// must treat that as "capacity unknown", not a zero-throughput step.
type Effective struct {
	StepID       string
	MinWorkers   int
	MaxWorkers   int
	SetupMinutes int
	Capacity     map[int]int
}

// Resolve merges the catalog default for step with its override, if one is
// present in overrides. Every zero or empty override field falls back to the
// default.
func Resolve(step catalog.StepDefinition, overrides []storage.ParameterOverride) Effective {
	eff := Effective{
		StepID:       step.ID,
		MinWorkers:   step.MinWorkers,
		MaxWorkers:   step.MaxWorkers,
		SetupMinutes: step.SetupMinutes,
		Capacity:     step.DefaultCapacity,
	}

	ov, ok := findOverride(step.ID, overrides)
	if !ok {
		return eff
	}

	if ov.MinWorkers > 0 {
		eff.MinWorkers = ov.MinWorkers
	}
	if ov.MaxWorkers > 0 {
		eff.MaxWorkers = ov.MaxWorkers
	}
	if ov.SetupMinutes > 0 {
		eff.SetupMinutes = ov.SetupMinutes
	}
	if ov.CapacityCurve != "" {
		curve, err := DecodeCurve(ov.CapacityCurve)
		if err != nil {
			// Degraded, not fatal: the settings surface should have blocked
			// this, but a bad curve must not take down the estimate path.
			eff.Capacity = nil
		} else {
			eff.Capacity = curve
		}
	}

	return eff
}

// CapacityFor returns the achievable units/hour for workerCount on the
// resolved step. An exact curve entry wins; counts above the highest
// documented entry plateau at that entry's rate; counts below every entry
// (including 0) produce nothing. A missing curve reports 0.
func CapacityFor(eff Effective, workerCount int) int {
	if len(eff.Capacity) == 0 {
		return 0
	}
	if rate, ok := eff.Capacity[workerCount]; ok {
		return rate
	}

	maxCount, maxRate := 0, 0
	for count, rate := range eff.Capacity {
		if count > maxCount {
			maxCount, maxRate = count, rate
		}
	}
	if workerCount >= maxCount {
		return maxRate
	}
	return 0
}

// DecodeCurve parses capacity-curve JSON text ({"workers": units/hour}) into
// a typed curve. Non-numeric keys or values, counts below 1, non-positive
// rates and empty curves are all rejected.
func DecodeCurve(raw string) (map[int]int, error) {
	var entries map[string]int
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("capacity curve is not a worker/rate object: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("capacity curve has no entries")
	}

	curve := make(map[int]int, len(entries))
	for key, rate := range entries {
		count, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("capacity curve key %q is not a worker count: %w", key, err)
		}
		if count < 1 {
			return nil, fmt.Errorf("capacity curve key %d is below 1", count)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("capacity curve rate %d for %d workers is not positive", rate, count)
		}
		curve[count] = rate
	}
	return curve, nil
}

func findOverride(stepID string, overrides []storage.ParameterOverride) (storage.ParameterOverride, bool) {
	for _, ov := range overrides {
		if ov.StepID == stepID {
			return ov, true
		}
	}
	return storage.ParameterOverride{}, false
}
