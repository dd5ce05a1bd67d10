package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"aqua-backend/internal/storage"
)

// SaveProject inserts the project together with a progress row for every
// catalog step in one transaction. Stock-seeded steps start with
// completed = stockUsed = the clamped allocation.
func (s *Storage) SaveProject(ctx context.Context, req storage.NewProject) (string, error) {
	const op = "storage.mysql.SaveProject"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
        INSERT INTO projects
            (id, name, product_type, printing_method, hanging_method, target_quantity, status, start_date, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `, id, req.Name, req.ProductType, req.PrintingMethod, req.HangingMethod, req.TargetQuantity, "Planned", req.StartDate, req.Notes)
	if err != nil {
		return "", fmt.Errorf("%s: insert project: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO project_progress (project_id, step_id, completed, stock_used, last_update)
        VALUES (?, ?, ?, ?, NOW())
    `)
	if err != nil {
		return "", fmt.Errorf("%s: prepare progress insert: %w", op, err)
	}
	defer stmt.Close()

	for stepID, progress := range storage.SeedProgress(req.TargetQuantity, req.StockAllocation) {
		if _, err := stmt.ExecContext(ctx, id, stepID, progress.Completed, progress.StockUsed); err != nil {
			return "", fmt.Errorf("%s: insert progress for step %s: %w", op, stepID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetProject(ctx context.Context, id string) (storage.Project, error) {
	const op = "storage.mysql.GetProject"

	var p storage.Project
	err := s.db.QueryRowContext(ctx, `
        SELECT id, name, product_type, printing_method, hanging_method, target_quantity, status, start_date, notes, created_at
        FROM projects WHERE id = ?
    `, id).Scan(&p.ID, &p.Name, &p.ProductType, &p.PrintingMethod, &p.HangingMethod,
		&p.TargetQuantity, &p.Status, &p.StartDate, &p.Notes, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Project{}, fmt.Errorf("%s: project %s: %w", op, id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Progress, err = s.projectProgress(ctx, id)
	if err != nil {
		return storage.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *Storage) GetProjects(ctx context.Context) ([]storage.Project, error) {
	const op = "storage.mysql.GetProjects"

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, product_type, printing_method, hanging_method, target_quantity, status, start_date, notes, created_at
        FROM projects ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var projects []storage.Project
	for rows.Next() {
		var p storage.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.ProductType, &p.PrintingMethod, &p.HangingMethod,
			&p.TargetQuantity, &p.Status, &p.StartDate, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		p.Progress = make(map[string]storage.StepProgress)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]int, len(projects))
	for i, p := range projects {
		byID[p.ID] = i
	}

	progressRows, err := s.db.QueryContext(ctx, `
        SELECT project_id, step_id, completed, stock_used, last_update FROM project_progress
    `)
	if err != nil {
		return nil, fmt.Errorf("%s: progress: %w", op, err)
	}
	defer progressRows.Close()

	for progressRows.Next() {
		var (
			projectID, stepID string
			sp                storage.StepProgress
		)
		if err := progressRows.Scan(&projectID, &stepID, &sp.Completed, &sp.StockUsed, &sp.LastUpdate); err != nil {
			return nil, fmt.Errorf("%s: scan progress: %w", op, err)
		}
		if i, ok := byID[projectID]; ok {
			projects[i].Progress[stepID] = sp
		}
	}
	if err := progressRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

// DeleteProject removes the project and its progress rows. Deletion is
// terminal; stock credited by the project stays in the ledger.
func (s *Storage) DeleteProject(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteProject"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_progress WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("%s: delete progress: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: delete project: %w", op, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%s: project %s: %w", op, id, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) projectProgress(ctx context.Context, projectID string) (map[string]storage.StepProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT step_id, completed, stock_used, last_update FROM project_progress WHERE project_id = ?
    `, projectID)
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]storage.StepProgress)
	for rows.Next() {
		var (
			stepID string
			sp     storage.StepProgress
		)
		if err := rows.Scan(&stepID, &sp.Completed, &sp.StockUsed, &sp.LastUpdate); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		progress[stepID] = sp
	}
	return progress, rows.Err()
}
