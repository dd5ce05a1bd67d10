package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/storage"
)

type Plans interface {
	GetDailyPlans(ctx context.Context, projectID string) ([]storage.DailyPlan, error)
}

func GetPlans(log *slog.Logger, plans Plans) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plans.get.GetPlans"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := plans.GetDailyPlans(ctx, r.URL.Query().Get("project_id"))
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load plans")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}
