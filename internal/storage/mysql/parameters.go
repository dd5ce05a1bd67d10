package mysql

import (
	"context"
	"fmt"

	"aqua-backend/internal/storage"
)

func (s *Storage) GetParameters(ctx context.Context) ([]storage.ParameterOverride, error) {
	const op = "storage.mysql.GetParameters"

	rows, err := s.db.QueryContext(ctx, `
        SELECT step_id, min_workers, max_workers, setup_minutes, capacity_curve FROM parameters
    `)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var overrides []storage.ParameterOverride
	for rows.Next() {
		var ov storage.ParameterOverride
		if err := rows.Scan(&ov.StepID, &ov.MinWorkers, &ov.MaxWorkers, &ov.SetupMinutes, &ov.CapacityCurve); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		overrides = append(overrides, ov)
	}

	return overrides, rows.Err()
}

// UpsertParameter stores the override for one step, replacing an existing
// one. Curve text reaching this point has already passed boundary
// validation in the settings handler.
func (s *Storage) UpsertParameter(ctx context.Context, ov storage.ParameterOverride) error {
	const op = "storage.mysql.UpsertParameter"

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO parameters (step_id, min_workers, max_workers, setup_minutes, capacity_curve)
        VALUES (?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            min_workers = VALUES(min_workers),
            max_workers = VALUES(max_workers),
            setup_minutes = VALUES(setup_minutes),
            capacity_curve = VALUES(capacity_curve)
    `, ov.StepID, ov.MinWorkers, ov.MaxWorkers, ov.SetupMinutes, ov.CapacityCurve)
	if err != nil {
		return fmt.Errorf("%s: upsert for step %s: %w", op, ov.StepID, err)
	}

	return nil
}
