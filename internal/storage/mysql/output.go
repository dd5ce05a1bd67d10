package mysql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"aqua-backend/internal/storage"
)

// RecordOutput applies one output event to all three ledgers in a single
// transaction: the project progress increment, the stock credit and the
// daily-log/activity appends. Either everything commits or nothing does; a
// reader can never observe a partially applied event.
//
// completed is incremented server-side (not overwritten with a client-
// computed value), matching the commutative increment the stock ledger uses,
// so sequential recordings compose additively.
func (s *Storage) RecordOutput(ctx context.Context, write storage.OutputWrite) error {
	const op = "storage.mysql.RecordOutput"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        UPDATE project_progress
        SET completed = completed + ?, last_update = NOW()
        WHERE project_id = ? AND step_id = ?
    `, write.Quantity, write.ProjectID, write.StepID)
	if err != nil {
		return fmt.Errorf("%s: update progress: %w", op, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%s: progress row %s/%s: %w", op, write.ProjectID, write.StepID, storage.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO step_stocks (product_type, step_id, quantity, last_update)
        VALUES (?, ?, ?, NOW())
        ON DUPLICATE KEY UPDATE
            quantity = quantity + VALUES(quantity),
            last_update = NOW()
    `, write.ProductType, write.StepID, write.Quantity)
	if err != nil {
		return fmt.Errorf("%s: credit stock: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO daily_logs
            (id, project_id, project_name, step_id, step_name, quantity, date, start_time, end_time, hours, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `, uuid.NewString(), write.ProjectID, write.ProjectName, write.StepID, write.StepName,
		write.Quantity, write.Date, write.StartTime, write.EndTime, write.Hours, write.Notes)
	if err != nil {
		return fmt.Errorf("%s: insert daily log: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO worker_activities
            (id, worker_id, project_id, project_name, step_id, step_name, date, start_time, end_time, hours_worked, quantity_produced, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `)
	if err != nil {
		return fmt.Errorf("%s: prepare activity insert: %w", op, err)
	}
	defer stmt.Close()

	for _, act := range write.Activities {
		_, err := stmt.ExecContext(ctx, uuid.NewString(), act.WorkerID, act.ProjectID, act.ProjectName,
			act.StepID, act.StepName, act.Date, act.StartTime, act.EndTime, act.HoursWorked, act.QuantityProduced)
		if err != nil {
			return fmt.Errorf("%s: insert activity for worker %s: %w", op, act.WorkerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
