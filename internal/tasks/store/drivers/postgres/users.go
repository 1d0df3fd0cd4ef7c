package postgres

import (
	"context"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct {
	pool *pgxpool.Pool
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
INSERT INTO users (email, password_hash, created_at)
VALUES ($1, $2, $3)
RETURNING id`

	if err := r.pool.QueryRow(ctx, q, u.Email, u.PasswordHash, u.CreatedAt).Scan(&u.ID); err != nil {
		return domain.User{}, mapError(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
