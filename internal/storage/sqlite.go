package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"routined/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	kind, days := encodeRecurrence(in.Recurrence)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, category, recurrence_kind, recurrence_days, start_date, sort_order, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Category, kind, days,
		nullDay(in.StartDate), in.SortOrder, boolInt(in.Active), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, category, recurrence_kind, recurrence_days, start_date, sort_order, active, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	kind, days := encodeRecurrence(in.Recurrence)
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, category = ?, recurrence_kind = ?, recurrence_days = ?, start_date = ?, sort_order = ?, active = ?
		WHERE id = ?`,
		in.Title, in.Category, kind, days, nullDay(in.StartDate), in.SortOrder, boolInt(in.Active), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteTask hard-deletes the task and its completion history in one
// transaction. The schema also declares ON DELETE CASCADE, but the explicit
// delete keeps the ownership rule visible instead of load-bearing in SQL.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM completions WHERE task_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := `SELECT id, title, category, recurrence_kind, recurrence_days, start_date, sort_order, active, created_at FROM tasks`
	args := make([]any, 0, 1)
	if filter.ActiveOnly {
		query += ` WHERE active = ?`
		args = append(args, 1)
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateCompletion(ctx context.Context, in model.Completion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completions (id, task_id, completed_at)
		VALUES (?, ?, ?)`,
		in.ID, in.TaskID, mustTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) DeleteCompletion(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTaskCompletions(ctx context.Context, taskID string) error {
	// Deleting zero rows is fine: a task with no history is not an error.
	_, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE task_id = ?`, taskID)
	return err
}

func (r *SQLiteRepository) ListCompletions(ctx context.Context, filter CompletionFilter) ([]model.Completion, error) {
	query := `SELECT id, task_id, completed_at FROM completions`
	args := make([]any, 0, 1)
	if filter.TaskID != "" {
		query += ` WHERE task_id = ?`
		args = append(args, filter.TaskID)
	}
	query += ` ORDER BY completed_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Completion, 0)
	for rows.Next() {
		item, scanErr := scanCompletion(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func nullDay(v *model.Day) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableDay(v sql.NullString) (*model.Day, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	day, err := model.ParseDay(v.String)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var kind, days string
	var start sql.NullString
	var active int
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Category, &kind, &days, &start, &out.SortOrder, &active, &created); err != nil {
		return model.Task{}, err
	}
	recurrence, err := decodeRecurrence(kind, days)
	if err != nil {
		return model.Task{}, err
	}
	startDate, err := parseNullableDay(start)
	if err != nil {
		return model.Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Task{}, err
	}
	out.Recurrence = recurrence
	out.StartDate = startDate
	out.Active = active == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanCompletion(s scanner) (model.Completion, error) {
	var out model.Completion
	var completed string
	if err := s.Scan(&out.ID, &out.TaskID, &completed); err != nil {
		return model.Completion{}, err
	}
	completedAt, err := parseRequiredTime(completed)
	if err != nil {
		return model.Completion{}, err
	}
	out.CompletedAt = completedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
