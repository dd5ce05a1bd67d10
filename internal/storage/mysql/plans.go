package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"aqua-backend/internal/storage"
)

// SaveDailyPlan appends one plan record. Plans are never updated in place;
// a correction is a new record.
func (s *Storage) SaveDailyPlan(ctx context.Context, plan storage.DailyPlan) (string, error) {
	const op = "storage.mysql.SaveDailyPlan"

	assignments, err := json.Marshal(plan.Assignments)
	if err != nil {
		return "", fmt.Errorf("%s: marshal assignments: %w", op, err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO daily_plans (id, project_id, date, assignments, notes, created_at)
        VALUES (?, ?, ?, ?, ?, NOW())
    `, id, plan.ProjectID, plan.Date, assignments, plan.Notes)
	if err != nil {
		return "", fmt.Errorf("%s: insert plan: %w", op, err)
	}

	return id, nil
}

// GetDailyPlans returns saved plans, newest first, optionally filtered to a
// project.
func (s *Storage) GetDailyPlans(ctx context.Context, projectID string) ([]storage.DailyPlan, error) {
	const op = "storage.mysql.GetDailyPlans"

	query := `SELECT id, project_id, date, assignments, notes, created_at FROM daily_plans`
	var args []interface{}
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var plans []storage.DailyPlan
	for rows.Next() {
		var (
			plan        storage.DailyPlan
			assignments []byte
		)
		if err := rows.Scan(&plan.ID, &plan.ProjectID, &plan.Date, &assignments, &plan.Notes, &plan.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if err := json.Unmarshal(assignments, &plan.Assignments); err != nil {
			return nil, fmt.Errorf("%s: unmarshal assignments for plan %s: %w", op, plan.ID, err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}
