package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aqua-backend/internal/storage"
)

func (s *Storage) GetStocks(ctx context.Context) ([]storage.StockRecord, error) {
	const op = "storage.mysql.GetStocks"

	rows, err := s.db.QueryContext(ctx, `
        SELECT product_type, step_id, quantity, last_update
        FROM step_stocks ORDER BY product_type, step_id
    `)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var stocks []storage.StockRecord
	for rows.Next() {
		var rec storage.StockRecord
		if err := rows.Scan(&rec.ProductType, &rec.StepID, &rec.Quantity, &rec.LastUpdate); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		stocks = append(stocks, rec)
	}

	return stocks, rows.Err()
}

// GetStock returns the available semi-finished quantity for a product type
// at a step; 0 when the key was never credited.
func (s *Storage) GetStock(ctx context.Context, productType, stepID string) (int, error) {
	const op = "storage.mysql.GetStock"

	var quantity int
	err := s.db.QueryRowContext(ctx, `
        SELECT quantity FROM step_stocks WHERE product_type = ? AND step_id = ?
    `, productType, stepID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return quantity, nil
}
