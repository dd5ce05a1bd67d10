package estimate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"aqua-backend/internal/planner"
	"aqua-backend/internal/storage"
)

type PlanningStorage interface {
	GetProject(ctx context.Context, id string) (storage.Project, error)
	GetParameters(ctx context.Context) ([]storage.ParameterOverride, error)
}

type Request struct {
	ProjectID    string         `json:"project_id"`
	TotalWorkers int            `json:"total_workers"`
	Assignments  map[string]int `json:"assignments,omitempty"`
}

type Response struct {
	Estimates  []planner.StepEstimate `json:"estimates"`
	Available  int                    `json:"available_workers"`
	Bottleneck bool                   `json:"bottleneck"`
	Warnings   []string               `json:"warnings,omitempty"`
}

// Estimate runs one wizard pass over the current project snapshot: the
// requested assignment is applied step by step, rejected deltas become
// warnings (the state stays valid), and the review projection is returned.
// Nothing is persisted.
func Estimate(log *slog.Logger, store PlanningStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.estimate.Estimate"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}
		if req.ProjectID == "" {
			http.Error(w, "project_id is required", http.StatusBadRequest)
			return
		}
		if req.TotalWorkers < 1 {
			http.Error(w, "total_workers must be at least 1", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		project, overrides, err := loadSnapshot(ctx, store, req.ProjectID)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load planning snapshot")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		wizard := planner.New()
		if err := wizard.Start(project, overrides, req.TotalWorkers); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		warnings := ApplyAssignments(wizard, req.Assignments)

		now := time.Now()
		render.JSON(w, r, Response{
			Estimates:  wizard.Estimates(now),
			Available:  wizard.Available(),
			Bottleneck: wizard.HasBottleneck(now),
			Warnings:   warnings,
		})
	}
}

// ApplyAssignments feeds the requested counts into the wizard one step at a
// time. A rejected assignment leaves the wizard unchanged and is reported
// as a warning naming the violated bound.
func ApplyAssignments(wizard *planner.Planner, assignments map[string]int) []string {
	var warnings []string
	for _, step := range wizard.Applicable() {
		count, ok := assignments[step.ID]
		if !ok || count == 0 {
			continue
		}
		if err := wizard.Assign(step.ID, count); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %s", step.Name, err))
		}
	}
	return warnings
}

func loadSnapshot(ctx context.Context, store PlanningStorage, projectID string) (storage.Project, []storage.ParameterOverride, error) {
	var (
		project   storage.Project
		overrides []storage.ParameterOverride
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = store.GetProject(gCtx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		overrides, err = store.GetParameters(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return storage.Project{}, nil, err
	}
	return project, overrides, nil
}
