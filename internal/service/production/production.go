// Package production turns a shop-floor output report into the atomic
// multi-record write of the three ledgers: project progress, global stock
// and the worker activity log.
package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/storage"
)

var (
	ErrBadQuantity       = errors.New("quantity must be positive")
	ErrStepNotInPipeline = errors.New("step is not part of the project's pipeline")
	ErrUnknownWorker     = errors.New("worker is not on the roster")
)

type Storage interface {
	GetProject(ctx context.Context, id string) (storage.Project, error)
	GetAllWorkers(ctx context.Context) ([]storage.Worker, error)
	RecordOutput(ctx context.Context, write storage.OutputWrite) error
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

// RecordOutput validates the report, resolves it against the project's
// pipeline and the roster, and commits the progress increment, stock credit,
// daily log and per-worker activity rows as one all-or-nothing write. On a
// rejected write nothing is applied and the error is surfaced as-is; there
// is no silent retry.
func (s *Service) RecordOutput(ctx context.Context, req storage.RecordOutput) (storage.OutputWrite, error) {
	const op = "service.production.RecordOutput"

	if req.Quantity <= 0 {
		return storage.OutputWrite{}, fmt.Errorf("%s: %w", op, ErrBadQuantity)
	}

	var (
		project storage.Project
		workers []storage.Worker
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = s.storage.GetProject(gCtx, req.ProjectID)
		if err != nil {
			return fmt.Errorf("project: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		workers, err = s.storage.GetAllWorkers(gCtx)
		if err != nil {
			return fmt.Errorf("workers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return storage.OutputWrite{}, fmt.Errorf("%s: %w", op, err)
	}

	step, ok := stepInPipeline(project, req.StepID)
	if !ok {
		return storage.OutputWrite{}, fmt.Errorf("%s: %s: %w", op, req.StepID, ErrStepNotInPipeline)
	}
	if err := checkRoster(workers, req.WorkerIDs); err != nil {
		return storage.OutputWrite{}, fmt.Errorf("%s: %w", op, err)
	}

	hours := windowHours(req.StartTime, req.EndTime)

	write := storage.OutputWrite{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		ProductType: project.ProductType,
		StepID:      step.ID,
		StepName:    step.Name,
		Quantity:    req.Quantity,
		Date:        time.Now().Format("2006-01-02"),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Hours:       hours,
		Notes:       req.Notes,
	}

	// The recorded quantity is credited to each worker in equal shares.
	if len(req.WorkerIDs) > 0 {
		share := float64(req.Quantity) / float64(len(req.WorkerIDs))
		for _, workerID := range req.WorkerIDs {
			write.Activities = append(write.Activities, storage.WorkerActivity{
				WorkerID:         workerID,
				ProjectID:        project.ID,
				ProjectName:      project.Name,
				StepID:           step.ID,
				StepName:         step.Name,
				Date:             write.Date,
				StartTime:        req.StartTime,
				EndTime:          req.EndTime,
				HoursWorked:      hours,
				QuantityProduced: share,
			})
		}
	}

	if err := s.storage.RecordOutput(ctx, write); err != nil {
		return storage.OutputWrite{}, fmt.Errorf("%s: %w", op, err)
	}

	return write, nil
}

func stepInPipeline(project storage.Project, stepID string) (catalog.StepDefinition, bool) {
	for _, step := range catalog.DeriveSteps(project.PrintingMethod, project.HangingMethod) {
		if step.ID == stepID {
			return step, true
		}
	}
	return catalog.StepDefinition{}, false
}

func checkRoster(workers []storage.Worker, ids []string) error {
	known := make(map[string]bool, len(workers))
	for _, w := range workers {
		known[w.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%s: %w", id, ErrUnknownWorker)
		}
	}
	return nil
}

// windowHours converts an optional HH:MM work window into hours. A missing
// or inverted window reports 0.
func windowHours(start, end string) float64 {
	if start == "" || end == "" {
		return 0
	}
	from, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	to, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	hours := to.Sub(from).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}
