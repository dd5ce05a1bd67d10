package record

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/service/production"
	"aqua-backend/internal/storage"
)

type OutputRecorder interface {
	RecordOutput(ctx context.Context, req storage.RecordOutput) (storage.OutputWrite, error)
}

// RecordOutput logs produced quantity for a project step. The write spans
// three ledgers and commits atomically; on failure nothing is applied and
// the error is surfaced to the operator without retry.
func RecordOutput(log *slog.Logger, recorder OutputRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.output.record.RecordOutput"

		var req storage.RecordOutput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if req.ProjectID == "" || req.StepID == "" {
			http.Error(w, "project_id and step_id are required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		write, err := recorder.RecordOutput(ctx, req)
		switch {
		case errors.Is(err, production.ErrBadQuantity),
			errors.Is(err, production.ErrStepNotInPipeline),
			errors.Is(err, production.ErrUnknownWorker):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		case err != nil:
			log.Error("failed to record output", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("output recorded",
			slog.String("project_id", write.ProjectID),
			slog.String("step_id", write.StepID),
			slog.Int("quantity", write.Quantity),
			slog.Int("workers", len(write.Activities)),
		)

		render.JSON(w, r, map[string]interface{}{
			"status":   "success",
			"quantity": write.Quantity,
			"step_id":  write.StepID,
			"workers":  len(write.Activities),
		})
	}
}
