package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?) RETURNING id`

	if err := r.db.QueryRowContext(ctx, q, u.Email, u.PasswordHash, toMicros(u.CreatedAt)).Scan(&u.ID); err != nil {
		return domain.User{}, mapError(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`

	var (
		u       domain.User
		created int64
	)
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &created); err != nil {
		return domain.User{}, mapError(err)
	}
	u.CreatedAt = fromMicros(created)
	return u, nil
}
