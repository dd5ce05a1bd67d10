package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aqua-backend/internal/storage"
)

type Stocks interface {
	GetStocks(ctx context.Context) ([]storage.StockRecord, error)
}

// GetStocks returns the global semi-finished stock ledger for the dashboard
// ticker.
func GetStocks(log *slog.Logger, stocks Stocks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stocks.get.GetStocks"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := stocks.GetStocks(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load stocks")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}
