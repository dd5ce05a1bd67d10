package get

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

type Projects interface {
	GetProjects(ctx context.Context) ([]storage.Project, error)
}

type Project interface {
	GetProject(ctx context.Context, id string) (storage.Project, error)
}

func GetProjects(log *slog.Logger, projects Projects) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.get.GetProjects"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := projects.GetProjects(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load projects")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}

func GetProject(log *slog.Logger, project Project) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.get.GetProject"

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "project id is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := project.GetProject(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load project")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, p)
	}
}
