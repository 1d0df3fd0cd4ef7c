package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store/sqlq"
)

type tasksRepo struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t                domain.Task
		desc             sql.NullString
		status           string
		created, updated int64
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &desc, &status, &created, &updated); err != nil {
		return domain.Task{}, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	t.Status = domain.Status(status)
	t.CreatedAt = fromMicros(created)
	t.UpdatedAt = fromMicros(updated)
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	const q = `
INSERT INTO tasks (user_id, title, description, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`

	err := r.db.QueryRowContext(ctx, q,
		t.UserID, t.Title, nullString(t.Description), string(t.Status), toMicros(t.CreatedAt), toMicros(t.UpdatedAt),
	).Scan(&t.ID)
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return t, nil
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id int64) (domain.Task, error) {
	q := `SELECT ` + sqlq.TaskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return t, nil
}

func (r *tasksRepo) ListTasks(ctx context.Context, q domain.TaskQuery) (int64, []domain.Task, error) {
	stmts := sqlq.BuildTaskList(sqlq.Question, q)

	var total int64
	if err := r.db.QueryRowContext(ctx, stmts.Count.SQL, stmts.Count.Args...).Scan(&total); err != nil {
		return 0, nil, mapError(err)
	}

	rows, err := r.db.QueryContext(ctx, stmts.Page.SQL, stmts.Page.Args...)
	if err != nil {
		return 0, nil, mapError(err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return 0, nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, mapError(err)
	}

	return total, tasks, nil
}

func (r *tasksRepo) UpdateTask(
	ctx context.Context,
	id, userID int64,
	p domain.TaskPatch,
	now time.Time,
) (domain.Task, error) {
	var status sql.NullString
	if p.Status != nil {
		status = sql.NullString{String: string(*p.Status), Valid: true}
	}

	row := r.db.QueryRowContext(ctx, sqlq.UpdateTask(sqlq.Question),
		nullString(p.Title), nullString(p.Description), status, toMicros(now), id, userID,
	)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return t, nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
