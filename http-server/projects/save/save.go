package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/storage"
)

type ProjectSaver interface {
	SaveProject(ctx context.Context, req storage.NewProject) (string, error)
}

// SaveProject creates a project with a progress row per catalog step.
// Manually entered pre-existing stock seeds the step's completed count but
// deliberately leaves the global stock ledger untouched.
func SaveProject(log *slog.Logger, saver ProjectSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.save.SaveProject"

		var req storage.NewProject
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if req.TargetQuantity <= 0 {
			http.Error(w, "target_quantity must be positive", http.StatusBadRequest)
			return
		}
		if !slices.Contains(catalog.ProductTypes, req.ProductType) {
			http.Error(w, "unknown product_type", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveProject(ctx, req)
		if err != nil {
			log.Error("failed to save project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("project created",
			slog.String("id", id),
			slog.String("name", req.Name),
			slog.Int("target", req.TargetQuantity),
		)

		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"id":     id,
		})
	}
}
