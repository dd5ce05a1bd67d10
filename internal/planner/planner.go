// Package planner implements the daily-planning wizard: allocating the day's
// worker pool across a project's pending steps and projecting hours, finish
// times and bottlenecks for the chosen assignment. It evaluates the
// assignment the operator builds; it does not search for an optimal one.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/params"
	"aqua-backend/internal/storage"
)

type State int

const (
	StateSelectingProject State = iota
	StateAssigningWorkers
	StateReviewingPlan
	StateSaved
)

const (
	// DayStartHour is when the shift begins; finish times are projected from
	// here.
	DayStartHour = 8
	// ShiftHours is the single-shift length; a step projected past it is a
	// bottleneck.
	ShiftHours = 8
)

var (
	// ErrPoolExhausted rejects an assignment that would exceed the day's
	// worker pool.
	ErrPoolExhausted = errors.New("no available workers")
	// ErrStepNotPlanned rejects an assignment to a step outside today's
	// applicable set.
	ErrStepNotPlanned = errors.New("step is not planned today")
)

// BoundError rejects an assignment above a step's effective worker maximum.
type BoundError struct {
	StepID     string
	MaxWorkers int
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("max workers for %s is %d", e.StepID, e.MaxWorkers)
}

// StepEstimate is the review projection for one applicable step.
type StepEstimate struct {
	StepID     string          `json:"step_id"`
	Name       string          `json:"name"`
	Assigned   int             `json:"assigned"`
	Capacity   int             `json:"capacity"` // units/hour, 0 when unknown
	Remaining  int             `json:"remaining"`
	Hours      decimal.Decimal `json:"hours"`
	HoursKnown bool            `json:"hours_known"` // false: no capacity with work remaining
	FinishAt   time.Time       `json:"finish_at"`
	Bottleneck bool            `json:"bottleneck"`
}

// Planner is one planning session. All operations are synchronous and work
// on the project/override snapshot handed to Start; nothing is persisted
// until the caller stores the plan built by Save.
type Planner struct {
	state        State
	project      storage.Project
	overrides    []storage.ParameterOverride
	totalWorkers int
	applicable   []catalog.StepDefinition
	assignments  map[string]int
}

func New() *Planner {
	return &Planner{state: StateSelectingProject}
}

func (p *Planner) State() State { return p.state }

func (p *Planner) Project() storage.Project { return p.project }

// Applicable returns the project's pipeline steps that still have remaining
// work; steps already covered by progress or seeded stock are not planned.
func (p *Planner) Applicable() []catalog.StepDefinition {
	out := make([]catalog.StepDefinition, len(p.applicable))
	copy(out, p.applicable)
	return out
}

func (p *Planner) Assignments() map[string]int {
	out := make(map[string]int, len(p.assignments))
	for id, n := range p.assignments {
		out[id] = n
	}
	return out
}

// Available reports how many workers of the pool are not yet assigned.
func (p *Planner) Available() int {
	return p.totalWorkers - p.assigned()
}

// Start fixes the project snapshot and the day's worker pool and moves the
// wizard to worker assignment. Every applicable step starts unstaffed.
func (p *Planner) Start(project storage.Project, overrides []storage.ParameterOverride, totalWorkers int) error {
	if p.state != StateSelectingProject {
		return fmt.Errorf("planner: start from state %d", p.state)
	}
	if totalWorkers < 1 {
		return fmt.Errorf("planner: total workers must be at least 1, got %d", totalWorkers)
	}

	p.project = project
	p.overrides = overrides
	p.totalWorkers = totalWorkers

	p.applicable = nil
	p.assignments = make(map[string]int)
	for _, step := range catalog.DeriveSteps(project.PrintingMethod, project.HangingMethod) {
		if project.Remaining(step.ID) > 0 {
			p.applicable = append(p.applicable, step)
			p.assignments[step.ID] = 0
		}
	}

	p.state = StateAssigningWorkers
	return nil
}

// Assign adjusts a step's worker count by delta. Rejections leave the state
// untouched: assigning past the pool returns ErrPoolExhausted, past the
// step's effective maximum a BoundError. Counts never go below zero; the
// step minimum is advisory and a step may stay unstaffed.
func (p *Planner) Assign(stepID string, delta int) error {
	if p.state != StateAssigningWorkers {
		return fmt.Errorf("planner: assign in state %d", p.state)
	}
	current, ok := p.assignments[stepID]
	if !ok {
		return fmt.Errorf("planner: %s: %w", stepID, ErrStepNotPlanned)
	}

	next := current + delta
	if next < 0 {
		next = 0
	}

	if delta > 0 {
		if p.assigned() >= p.totalWorkers || p.assigned()-current+next > p.totalWorkers {
			return ErrPoolExhausted
		}
	}

	step, _ := catalog.Lookup(stepID)
	eff := params.Resolve(step, p.overrides)
	if next > eff.MaxWorkers {
		return &BoundError{StepID: stepID, MaxWorkers: eff.MaxWorkers}
	}

	p.assignments[stepID] = next
	return nil
}

// Review freezes the assignment and moves to the projection screen.
func (p *Planner) Review() error {
	if p.state != StateAssigningWorkers {
		return fmt.Errorf("planner: review in state %d", p.state)
	}
	p.state = StateReviewingPlan
	return nil
}

// Back steps the wizard backwards. Returning from review keeps the
// assignments; returning to project selection clears them, since the
// applicable steps may change with a different project.
func (p *Planner) Back() error {
	switch p.state {
	case StateReviewingPlan:
		p.state = StateAssigningWorkers
	case StateAssigningWorkers:
		p.project = storage.Project{}
		p.overrides = nil
		p.totalWorkers = 0
		p.applicable = nil
		p.assignments = nil
		p.state = StateSelectingProject
	default:
		return fmt.Errorf("planner: back in state %d", p.state)
	}
	return nil
}

// Estimates projects hours and finish times for the current assignment. A
// step with remaining work and no capacity has unknown hours and is always a
// bottleneck; otherwise a step projected past the shift length is.
func (p *Planner) Estimates(now time.Time) []StepEstimate {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), DayStartHour, 0, 0, 0, now.Location())
	shift := decimal.NewFromInt(ShiftHours)

	out := make([]StepEstimate, 0, len(p.applicable))
	for _, step := range p.applicable {
		assigned := p.assignments[step.ID]
		eff := params.Resolve(step, p.overrides)
		capacity := params.CapacityFor(eff, assigned)
		remaining := p.project.Remaining(step.ID)

		est := StepEstimate{
			StepID:    step.ID,
			Name:      step.Name,
			Assigned:  assigned,
			Capacity:  capacity,
			Remaining: remaining,
			FinishAt:  dayStart,
		}

		switch {
		case capacity > 0:
			est.Hours = decimal.NewFromInt(int64(remaining)).Div(decimal.NewFromInt(int64(capacity)))
			est.HoursKnown = true
			est.FinishAt = dayStart.Add(time.Duration(est.Hours.InexactFloat64() * float64(time.Hour)))
			est.Bottleneck = est.Hours.GreaterThan(shift)
		case remaining > 0:
			// Capacity unknown or step unstaffed: hours are undefined, which
			// is itself a bottleneck.
			est.HoursKnown = false
			est.Bottleneck = true
		}

		out = append(out, est)
	}
	return out
}

// HasBottleneck reports whether any step of the current assignment is
// flagged, for the review screen's summary warning.
func (p *Planner) HasBottleneck(now time.Time) bool {
	for _, est := range p.Estimates(now) {
		if est.Bottleneck {
			return true
		}
	}
	return false
}

// Save builds the immutable plan record for today and finishes the session.
// Persisting the record is the caller's job; the planner does no post-commit
// bookkeeping and does not reserve the assigned workers.
func (p *Planner) Save(notes string, now time.Time) (storage.DailyPlan, error) {
	if p.state != StateReviewingPlan {
		return storage.DailyPlan{}, fmt.Errorf("planner: save in state %d", p.state)
	}

	plan := storage.DailyPlan{
		ProjectID:   p.project.ID,
		Date:        now.Format("2006-01-02"),
		Assignments: p.Assignments(),
		Notes:       notes,
	}
	p.state = StateSaved
	return plan, nil
}

func (p *Planner) assigned() int {
	total := 0
	for _, n := range p.assignments {
		total += n
	}
	return total
}
