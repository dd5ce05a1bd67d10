package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/storage"
)

type Activities interface {
	GetActivities(ctx context.Context, workerID string) ([]storage.WorkerActivity, error)
}

// GetActivities returns the activity history, newest first, optionally
// filtered by worker_id.
func GetActivities(log *slog.Logger, activities Activities) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.get.GetActivities"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := activities.GetActivities(ctx, r.URL.Query().Get("worker_id"))
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load activities")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}
