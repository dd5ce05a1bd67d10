// Package report renders the worker activity history as an Excel workbook.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"aqua-backend/internal/storage"
)

type Storage interface {
	GetActivities(ctx context.Context, workerID string) ([]storage.WorkerActivity, error)
	GetAllWorkers(ctx context.Context) ([]storage.Worker, error)
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

// ActivityReport builds the activity workbook, optionally filtered to one
// worker. Worker ids are resolved to roster names; an id no longer on the
// roster is printed as-is.
func (s *Service) ActivityReport(ctx context.Context, workerID string) ([]byte, error) {
	const op = "service.report.ActivityReport"

	var (
		activities []storage.WorkerActivity
		workers    []storage.Worker
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activities, err = s.storage.GetActivities(gCtx, workerID)
		if err != nil {
			return fmt.Errorf("activities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		workers, err = s.storage.GetAllWorkers(gCtx)
		if err != nil {
			return fmt.Errorf("workers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names := make(map[string]string, len(workers))
	for _, w := range workers {
		names[w.ID] = w.Name
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Worker Activity"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"Date", "Worker", "Step", "Hours", "Quantity", "Project"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "F", 18)

	for i, act := range activities {
		row := i + 2
		name := names[act.WorkerID]
		if name == "" {
			name = act.WorkerID
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), act.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), act.StepName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), act.HoursWorked)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), act.QuantityProduced)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), act.ProjectName)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}
	return buf.Bytes(), nil
}
