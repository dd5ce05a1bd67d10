package mysql

import (
	"context"
	"fmt"

	"aqua-backend/internal/storage"
)

// GetActivities returns the worker activity history, newest first,
// optionally filtered to one worker.
func (s *Storage) GetActivities(ctx context.Context, workerID string) ([]storage.WorkerActivity, error) {
	const op = "storage.mysql.GetActivities"

	query := `
        SELECT id, worker_id, project_id, project_name, step_id, step_name,
               date, start_time, end_time, hours_worked, quantity_produced, created_at
        FROM worker_activities`
	var args []interface{}
	if workerID != "" {
		query += ` WHERE worker_id = ?`
		args = append(args, workerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var activities []storage.WorkerActivity
	for rows.Next() {
		var act storage.WorkerActivity
		if err := rows.Scan(&act.ID, &act.WorkerID, &act.ProjectID, &act.ProjectName, &act.StepID, &act.StepName,
			&act.Date, &act.StartTime, &act.EndTime, &act.HoursWorked, &act.QuantityProduced, &act.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		activities = append(activities, act)
	}

	return activities, rows.Err()
}
