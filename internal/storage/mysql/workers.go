package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"aqua-backend/internal/storage"
)

func (s *Storage) GetAllWorkers(ctx context.Context) ([]storage.Worker, error) {
	const op = "storage.mysql.GetAllWorkers"

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, type, availability FROM workers ORDER BY name ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var workers []storage.Worker
	for rows.Next() {
		var (
			w            storage.Worker
			availability []byte
		)
		if err := rows.Scan(&w.ID, &w.Name, &w.Type, &availability); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if len(availability) > 0 {
			if err := json.Unmarshal(availability, &w.Availability); err != nil {
				return nil, fmt.Errorf("%s: unmarshal availability for worker %s: %w", op, w.ID, err)
			}
		}
		workers = append(workers, w)
	}

	return workers, rows.Err()
}

func (s *Storage) SaveWorker(ctx context.Context, w storage.Worker) (string, error) {
	const op = "storage.mysql.SaveWorker"

	availability, err := json.Marshal(w.Availability)
	if err != nil {
		return "", fmt.Errorf("%s: marshal availability: %w", op, err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO workers (id, name, type, availability) VALUES (?, ?, ?, ?)
    `, id, w.Name, w.Type, availability)
	if err != nil {
		return "", fmt.Errorf("%s: insert worker: %w", op, err)
	}

	return id, nil
}
