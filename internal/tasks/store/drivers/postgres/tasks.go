package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store/sqlq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type tasksRepo struct {
	pool *pgxpool.Pool
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.Status(status)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	const q = `
INSERT INTO tasks (user_id, title, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	err := r.pool.QueryRow(ctx, q,
		t.UserID, t.Title, t.Description, string(t.Status), t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return t, nil
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id int64) (domain.Task, error) {
	q := `SELECT ` + sqlq.TaskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return t, nil
}

func (r *tasksRepo) ListTasks(ctx context.Context, q domain.TaskQuery) (int64, []domain.Task, error) {
	stmts := sqlq.BuildTaskList(sqlq.Dollar, q)

	var total int64
	if err := r.pool.QueryRow(ctx, stmts.Count.SQL, stmts.Count.Args...).Scan(&total); err != nil {
		return 0, nil, mapError(err)
	}

	rows, err := r.pool.Query(ctx, stmts.Page.SQL, stmts.Page.Args...)
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
	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}

	row := r.pool.QueryRow(ctx, sqlq.UpdateTask(sqlq.Dollar),
		p.Title, p.Description, status, now, id, userID,
	)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return t, nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
