package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aqua-backend/internal/catalog"
)

func TestSeedProgress(t *testing.T) {
	progress := SeedProgress(1000, map[string]int{
		catalog.StepCutting:   300,
		catalog.StepFlowpack:  1500, // above target
		catalog.StepSyraptiko: -20,  // garbage input
	})

	assert.Len(t, progress, len(catalog.All()))

	assert.Equal(t, StepProgress{Completed: 300, StockUsed: 300}, progress[catalog.StepCutting])
	assert.Equal(t, StepProgress{Completed: 1000, StockUsed: 1000}, progress[catalog.StepFlowpack])
	assert.Equal(t, StepProgress{}, progress[catalog.StepSyraptiko])

	// Steps without an allocation start at zero.
	assert.Equal(t, StepProgress{}, progress[catalog.StepFinalPacking])
}

func TestRemaining(t *testing.T) {
	p := Project{
		TargetQuantity: 1000,
		Progress: map[string]StepProgress{
			catalog.StepCutting:  {Completed: 300},
			catalog.StepFlowpack: {Completed: 1200},
		},
	}

	assert.Equal(t, 700, p.Remaining(catalog.StepCutting))
	// Reading is pure; asking twice changes nothing.
	assert.Equal(t, 700, p.Remaining(catalog.StepCutting))

	// Over-recorded output goes negative, display clamps.
	assert.Equal(t, -200, p.Remaining(catalog.StepFlowpack))

	// Unknown step reads as untouched.
	assert.Equal(t, 1000, p.Remaining(catalog.StepSyraptiko))
}
