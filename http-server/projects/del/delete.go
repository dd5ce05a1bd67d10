package del

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aqua-backend/internal/storage"
)

type ProjectDeleter interface {
	DeleteProject(ctx context.Context, id string) error
}

// DeleteProject removes a project and its progress. The delete is terminal;
// stock the project credited stays in the ledger.
func DeleteProject(log *slog.Logger, deleter ProjectDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.del.DeleteProject"

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "project id is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := deleter.DeleteProject(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to delete project")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("project deleted", slog.String("id", id))

		render.JSON(w, r, map[string]interface{}{"status": "success"})
	}
}
