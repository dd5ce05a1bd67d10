package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ReportGenerator interface {
	ActivityReport(ctx context.Context, workerID string) ([]byte, error)
}

// GenerateActivityExcel streams the worker-activity workbook, optionally
// filtered by worker_id.
func GenerateActivityExcel(log *slog.Logger, generator ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate-report.GenerateActivityExcel"

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		report, err := generator.ActivityReport(ctx, r.URL.Query().Get("worker_id"))
		if err != nil {
			log.Error("failed to generate report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("worker_activity_%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(report)
	}
}
