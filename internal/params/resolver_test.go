package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/storage"
)

func TestResolve_NoOverride(t *testing.T) {
	step, _ := catalog.Lookup(catalog.StepFlowpack)

	eff := Resolve(step, nil)

	assert.Equal(t, 2, eff.MinWorkers)
	assert.Equal(t, 4, eff.MaxWorkers)
	assert.Equal(t, 45, eff.SetupMinutes)
	assert.Equal(t, step.DefaultCapacity, eff.Capacity)
}

func TestResolve_OverrideWins(t *testing.T) {
	step, _ := catalog.Lookup(catalog.StepCutting)
	overrides := []storage.ParameterOverride{{
		StepID:        catalog.StepCutting,
		MaxWorkers:    3,
		CapacityCurve: `{"1": 450, "2": 800, "3": 1000}`,
	}}

	eff := Resolve(step, overrides)

	// Unset fields fall back to the catalog default.
	assert.Equal(t, 1, eff.MinWorkers)
	assert.Equal(t, 20, eff.SetupMinutes)
	assert.Equal(t, 3, eff.MaxWorkers)
	assert.Equal(t, map[int]int{1: 450, 2: 800, 3: 1000}, eff.Capacity)
}

func TestResolve_MalformedCurveDegrades(t *testing.T) {
	step, _ := catalog.Lookup(catalog.StepCutting)
	overrides := []storage.ParameterOverride{{
		StepID:        catalog.StepCutting,
		CapacityCurve: `{"one": "fast"}`,
	}}

	eff := Resolve(step, overrides)

	// Capacity unknown, not zero-throughput: every lookup reports 0.
	assert.Nil(t, eff.Capacity)
	assert.Equal(t, 0, CapacityFor(eff, 1))
	assert.Equal(t, 0, CapacityFor(eff, 10))
}

func TestCapacityFor(t *testing.T) {
	step, _ := catalog.Lookup(catalog.StepFlowpack)
	eff := Resolve(step, nil) // {2:800, 3:1200, 4:1500}

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"below all keys", 0, 0},
		{"below lowest key", 1, 0},
		{"exact entry", 3, 1200},
		{"highest entry", 4, 1500},
		{"plateau above highest", 9, 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapacityFor(eff, tt.workers))
		})
	}
}

func TestCapacityFor_MonotonicPlateau(t *testing.T) {
	eff := Effective{Capacity: map[int]int{1: 40}}

	assert.Equal(t, 0, CapacityFor(eff, 0))
	assert.Equal(t, 40, CapacityFor(eff, 1))
	assert.Equal(t, 40, CapacityFor(eff, 5))

	prev := 0
	for w := 0; w <= 12; w++ {
		rate := CapacityFor(eff, w)
		assert.GreaterOrEqual(t, rate, prev, "capacity dropped at %d workers", w)
		prev = rate
	}
}

func TestDecodeCurve(t *testing.T) {
	curve, err := DecodeCurve(`{"2": 800, "3": 1200}`)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 800, 3: 1200}, curve)

	bad := []string{
		``,
		`not json`,
		`{}`,
		`{"x": 100}`,
		`{"0": 100}`,
		`{"2": 0}`,
		`{"2": -5}`,
		`{"2": "fast"}`,
	}
	for _, raw := range bad {
		_, err := DecodeCurve(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
