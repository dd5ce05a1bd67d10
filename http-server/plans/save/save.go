package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"aqua-backend/http-server/planning/estimate"
	"aqua-backend/internal/planner"
	"aqua-backend/internal/storage"
)

type PlanStorage interface {
	GetProject(ctx context.Context, id string) (storage.Project, error)
	GetParameters(ctx context.Context) ([]storage.ParameterOverride, error)
	SaveDailyPlan(ctx context.Context, plan storage.DailyPlan) (string, error)
}

type Request struct {
	ProjectID    string         `json:"project_id"`
	TotalWorkers int            `json:"total_workers"`
	Assignments  map[string]int `json:"assignments"`
	Notes        string         `json:"notes,omitempty"`
}

// SavePlan validates the assignment through the wizard and appends the plan
// record. Unlike the estimate endpoint, a rejected assignment fails the
// whole request: a plan that violates a bound is never persisted.
func SavePlan(log *slog.Logger, store PlanStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plans.save.SavePlan"

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

		var (
			project   storage.Project
			overrides []storage.ParameterOverride
		)
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			project, err = store.GetProject(gCtx, req.ProjectID)
			return err
		})
		g.Go(func() error {
			var err error
			overrides, err = store.GetParameters(gCtx)
			return err
		})
		if err := g.Wait(); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Project not found", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load planning snapshot")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		wizard := planner.New()
		if err := wizard.Start(project, overrides, req.TotalWorkers); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if warnings := estimate.ApplyAssignments(wizard, req.Assignments); len(warnings) > 0 {
			http.Error(w, "invalid assignments: "+strings.Join(warnings, "; "), http.StatusBadRequest)
			return
		}
		if err := wizard.Review(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		plan, err := wizard.Save(req.Notes, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id, err := store.SaveDailyPlan(ctx, plan)
		if err != nil {
			log.Error("failed to save plan", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("daily plan saved",
			slog.String("id", id),
			slog.String("project_id", plan.ProjectID),
			slog.String("date", plan.Date),
		)

		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"id":     id,
			"date":   plan.Date,
		})
	}
}
