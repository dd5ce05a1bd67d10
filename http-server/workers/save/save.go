package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/storage"
)

type WorkerSaver interface {
	SaveWorker(ctx context.Context, w storage.Worker) (string, error)
}

func SaveWorker(log *slog.Logger, saver WorkerSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workers.save.SaveWorker"

		var worker storage.Worker
		if err := json.NewDecoder(r.Body).Decode(&worker); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if worker.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if worker.Type == "" {
			worker.Type = "Core"
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveWorker(ctx, worker)
		if err != nil {
			log.Error("failed to save worker", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("worker added", slog.String("id", id), slog.String("name", worker.Name))

		render.JSON(w, r, map[string]interface{}{"status": "success", "id": id})
	}
}
