// Package catalog holds the compiled-in registry of manufacturing steps and
// the method-driven pipeline derivation. The base table is never mutated at
// runtime; site-specific tuning lives in the parameters collection and is
// merged in by the params package.
package catalog

import "sort"

// Step ids, stable across the database and the frontend.
const (
	StepPrintingScreen = "printing_screen"
	StepPrintingUV     = "printing_uv"
	StepCutting        = "cutting"
	StepStringMachine  = "string_machine"
	StepHangerManual   = "hanger_manual"
	StepFlowpack       = "flowpack"
	StepSyraptiko      = "syraptiko"
	StepFinalPacking   = "final_packing"
)

// Printing methods.
const (
	PrintingScreen     = "Screen"
	PrintingUV         = "UV"
	PrintingPrePrinted = "Pre-printed"
)

// Hanging methods.
const (
	HangingString = "String"
	HangingHanger = "Hanger"
)

// Project statuses.
const (
	StatusPlanned    = "Planned"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

var ProductTypes = []string{
	"Paper Air Freshener",
	"Air Wood",
	"Diffuser",
	"Aerosol",
	"Other",
}

// StepDefinition describes one manufacturing step. DefaultCapacity maps an
// assigned worker count to the achievable units/hour at that count; the
// curve is sparse and empirically measured, not a per-worker rate.
type StepDefinition struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	PipelineOrder   int         `json:"pipeline_order"`
	MinWorkers      int         `json:"min_workers"`
	MaxWorkers      int         `json:"max_workers"`
	SetupMinutes    int         `json:"setup_minutes"`
	DefaultCapacity map[int]int `json:"default_capacity"`
}

var steps = []StepDefinition{
	{
		ID:              StepPrintingScreen,
		Name:            "Printing - Screen",
		PipelineOrder:   1,
		MinWorkers:      1,
		MaxWorkers:      2,
		SetupMinutes:    20,
		DefaultCapacity: map[int]int{1: 2400, 2: 3000},
	},
	{
		ID:              StepPrintingUV,
		Name:            "Printing - UV",
		PipelineOrder:   1,
		MinWorkers:      1,
		MaxWorkers:      1,
		SetupMinutes:    10,
		DefaultCapacity: map[int]int{1: 768},
	},
	{
		ID:              StepCutting,
		Name:            "Cutting",
		PipelineOrder:   2,
		MinWorkers:      1,
		MaxWorkers:      2,
		SetupMinutes:    20,
		DefaultCapacity: map[int]int{1: 400, 2: 750},
	},
	{
		ID:              StepStringMachine,
		Name:            "String Machine",
		PipelineOrder:   3,
		MinWorkers:      1,
		MaxWorkers:      1,
		SetupMinutes:    10,
		DefaultCapacity: map[int]int{1: 40},
	},
	{
		ID:              StepHangerManual,
		Name:            "Hanger (Manual)",
		PipelineOrder:   3,
		MinWorkers:      1,
		MaxWorkers:      5,
		SetupMinutes:    0,
		DefaultCapacity: map[int]int{1: 900, 2: 1800, 3: 2700, 4: 3600, 5: 4500},
	},
	{
		ID:              StepFlowpack,
		Name:            "Flowpack",
		PipelineOrder:   4,
		MinWorkers:      2,
		MaxWorkers:      4,
		SetupMinutes:    45,
		DefaultCapacity: map[int]int{2: 800, 3: 1200, 4: 1500},
	},
	{
		ID:              StepSyraptiko,
		Name:            "Syraptiko",
		PipelineOrder:   5,
		MinWorkers:      1,
		MaxWorkers:      3,
		SetupMinutes:    10,
		DefaultCapacity: map[int]int{1: 350, 2: 680, 3: 1000},
	},
	{
		ID:              StepFinalPacking,
		Name:            "Final Packing",
		PipelineOrder:   6,
		MinWorkers:      1,
		MaxWorkers:      4,
		SetupMinutes:    10,
		DefaultCapacity: map[int]int{1: 600, 2: 1150, 3: 1700, 4: 2200},
	},
}

// Steps that only apply to a project when selected by its printing or
// hanging method.
var methodSpecific = map[string]bool{
	StepPrintingScreen: true,
	StepPrintingUV:     true,
	StepStringMachine:  true,
	StepHangerManual:   true,
}

// Lookup returns the step definition for id.
func Lookup(id string) (StepDefinition, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return StepDefinition{}, false
}

// All returns every step definition ordered by pipeline order, ties broken
// by declaration order.
func All() []StepDefinition {
	out := make([]StepDefinition, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PipelineOrder < out[j].PipelineOrder
	})
	return out
}

// DeriveSteps returns the ordered subset of steps that a project with the
// given printing and hanging methods goes through: the common steps, plus at
// most one printing step and at most one hanging step. Pre-printed projects
// get no printing step; an unrecognized method selects nothing.
func DeriveSteps(printingMethod, hangingMethod string) []StepDefinition {
	var out []StepDefinition
	for _, s := range steps {
		if !methodSpecific[s.ID] {
			out = append(out, s)
		}
	}

	switch printingMethod {
	case PrintingScreen:
		out = appendStep(out, StepPrintingScreen)
	case PrintingUV:
		out = appendStep(out, StepPrintingUV)
	}

	switch hangingMethod {
	case HangingString:
		out = appendStep(out, StepStringMachine)
	case HangingHanger:
		out = appendStep(out, StepHangerManual)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PipelineOrder < out[j].PipelineOrder
	})
	return out
}

func appendStep(out []StepDefinition, id string) []StepDefinition {
	s, ok := Lookup(id)
	if !ok {
		return out
	}
	return append(out, s)
}
