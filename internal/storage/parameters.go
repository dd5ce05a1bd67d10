package storage

// ParameterOverride is a site-specific override of a catalog step's
// constraints and capacity curve. A zero or empty field falls back to the
// compiled-in default at resolve time.
type ParameterOverride struct {
	StepID        string `json:"step_id"`
	MinWorkers    int    `json:"min_workers,omitempty"`
	MaxWorkers    int    `json:"max_workers,omitempty"`
	SetupMinutes  int    `json:"setup_minutes,omitempty"`
	CapacityCurve string `json:"capacity_curve,omitempty"` // JSON text, {"workers": units/hour}
}
