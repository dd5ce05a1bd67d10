package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/params"
	"aqua-backend/internal/storage"
)

type ParameterUpserter interface {
	UpsertParameter(ctx context.Context, ov storage.ParameterOverride) error
}

// UpdateParameter saves a per-step override. The capacity curve is validated
// here, at the settings boundary, so malformed text never reaches the
// resolver's degraded path from this surface.
func UpdateParameter(log *slog.Logger, upserter ParameterUpserter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.parameters.update.UpdateParameter"

		stepID := chi.URLParam(r, "stepID")
		step, ok := catalog.Lookup(stepID)
		if !ok {
			http.Error(w, "Unknown step", http.StatusNotFound)
			return
		}

		var ov storage.ParameterOverride
		if err := json.NewDecoder(r.Body).Decode(&ov); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}
		ov.StepID = stepID

		if ov.MinWorkers < 0 || ov.MaxWorkers < 0 || ov.SetupMinutes < 0 {
			http.Error(w, "worker bounds and setup minutes must not be negative", http.StatusBadRequest)
			return
		}
		if ov.CapacityCurve != "" {
			if _, err := params.DecodeCurve(ov.CapacityCurve); err != nil {
				http.Error(w, "invalid capacity curve: "+err.Error(), http.StatusBadRequest)
				return
			}
		}

		// The merged bounds must stay ordered, whichever side the override
		// leaves at the default.
		eff := params.Resolve(step, []storage.ParameterOverride{ov})
		if eff.MinWorkers > eff.MaxWorkers {
			http.Error(w, "min_workers must not exceed max_workers", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := upserter.UpsertParameter(ctx, ov); err != nil {
			log.Error("failed to save parameter", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("parameter override saved", slog.String("step_id", stepID))

		render.JSON(w, r, map[string]interface{}{"status": "success", "step_id": stepID})
	}
}
