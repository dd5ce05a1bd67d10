package calculator

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/service/calculator"
)

type Estimator interface {
	Estimate(ctx context.Context, req calculator.Request) ([]calculator.Row, error)
}

// CalculateEstimates answers the reference-calculator question: per derived
// step, the stock on hand, the net work after it and the hours at the
// assumed worker counts.
func CalculateEstimates(log *slog.Logger, estimator Estimator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calculator.CalculateEstimates"

		var req calculator.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Quantity <= 0 {
			http.Error(w, "quantity must be positive", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := estimator.Estimate(ctx, req)
		if err != nil {
			log.Error("failed to calculate estimates", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, rows)
	}
}
