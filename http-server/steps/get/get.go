package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/params"
	"aqua-backend/internal/storage"
)

type Parameters interface {
	GetParameters(ctx context.Context) ([]storage.ParameterOverride, error)
}

// StepView is one catalog step with its effective (override-merged)
// constraints, for the settings and planning screens.
type StepView struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	PipelineOrder int         `json:"pipeline_order"`
	MinWorkers    int         `json:"min_workers"`
	MaxWorkers    int         `json:"max_workers"`
	SetupMinutes  int         `json:"setup_minutes"`
	Capacity      map[int]int `json:"capacity"` // null when the override curve is malformed
	Overridden    bool        `json:"overridden"`
}

func GetSteps(log *slog.Logger, parameters Parameters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.steps.get.GetSteps"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		overrides, err := parameters.GetParameters(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load parameters")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		overridden := make(map[string]bool, len(overrides))
		for _, ov := range overrides {
			overridden[ov.StepID] = true
		}

		var views []StepView
		for _, step := range catalog.All() {
			eff := params.Resolve(step, overrides)
			views = append(views, StepView{
				ID:            step.ID,
				Name:          step.Name,
				PipelineOrder: step.PipelineOrder,
				MinWorkers:    eff.MinWorkers,
				MaxWorkers:    eff.MaxWorkers,
				SetupMinutes:  eff.SetupMinutes,
				Capacity:      eff.Capacity,
				Overridden:    overridden[step.ID],
			})
		}

		render.JSON(w, r, views)
	}
}
