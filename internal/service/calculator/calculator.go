// Package calculator answers the reference question "how long would this
// quantity take", for any product/method combination, counting available
// semi-finished stock against the work.
package calculator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/params"
	"aqua-backend/internal/storage"
)

type Storage interface {
	GetStocks(ctx context.Context) ([]storage.StockRecord, error)
	GetParameters(ctx context.Context) ([]storage.ParameterOverride, error)
}

type Request struct {
	Quantity       int            `json:"quantity"`
	ProductType    string         `json:"product_type"`
	PrintingMethod string         `json:"printing_method"`
	HangingMethod  string         `json:"hanging_method"`
	Workers        map[string]int `json:"workers,omitempty"` // stepID -> assumed workers, default 1
}

type Row struct {
	StepID         string          `json:"step_id"`
	Name           string          `json:"name"`
	StockAvailable int             `json:"stock_available"`
	WorkNeeded     int             `json:"work_needed"`
	Workers        int             `json:"workers"`
	Capacity       int             `json:"capacity"`
	Hours          decimal.Decimal `json:"hours"`
	HoursKnown     bool            `json:"hours_known"`
}

type Service struct {
	storage Storage
}

func New(storage Storage) *Service {
	return &Service{storage: storage}
}

// Estimate walks the derived pipeline for the request: per step, the stock
// already available for the product type, the net work after stock, and the
// time that work takes at the assumed worker count.
func (s *Service) Estimate(ctx context.Context, req Request) ([]Row, error) {
	const op = "service.calculator.Estimate"

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%s: quantity must be positive, got %d", op, req.Quantity)
	}

	var (
		stocks    []storage.StockRecord
		overrides []storage.ParameterOverride
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stocks, err = s.storage.GetStocks(gCtx)
		if err != nil {
			return fmt.Errorf("stocks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		overrides, err = s.storage.GetParameters(gCtx)
		if err != nil {
			return fmt.Errorf("parameters: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	available := make(map[string]int)
	for _, rec := range stocks {
		if rec.ProductType == req.ProductType {
			available[rec.StepID] = rec.Quantity
		}
	}

	var rows []Row
	for _, step := range catalog.DeriveSteps(req.PrintingMethod, req.HangingMethod) {
		workNeeded := req.Quantity - available[step.ID]
		if workNeeded < 0 {
			workNeeded = 0
		}

		workers := req.Workers[step.ID]
		if workers == 0 {
			workers = 1
		}
		capacity := params.CapacityFor(params.Resolve(step, overrides), workers)

		row := Row{
			StepID:         step.ID,
			Name:           step.Name,
			StockAvailable: available[step.ID],
			WorkNeeded:     workNeeded,
			Workers:        workers,
			Capacity:       capacity,
		}
		if workNeeded == 0 {
			row.HoursKnown = true
		} else if capacity > 0 {
			row.Hours = decimal.NewFromInt(int64(workNeeded)).Div(decimal.NewFromInt(int64(capacity)))
			row.HoursKnown = true
		}
		rows = append(rows, row)
	}

	return rows, nil
}
