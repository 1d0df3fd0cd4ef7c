package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (postgres,
// sqlite) implement this and expose sub-repositories per table. There are
// no transactions: every mutation that depends on ownership is a single
// conditional statement.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Close releases the underlying pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a user and returns it with its assigned id.
	// A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByEmail looks up a normalised email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Tasks interface {
	// CreateTask inserts t and returns it with its assigned id.
	CreateTask(ctx context.Context, t domain.Task) (domain.Task, error)

	// GetTaskByID is deliberately not scoped by owner so callers can tell
	// a missing task from someone else's.
	GetTaskByID(ctx context.Context, id int64) (domain.Task, error)

	// ListTasks returns the total number of matching tasks and the rows of
	// the requested page.
	ListTasks(ctx context.Context, q domain.TaskQuery) (int64, []domain.Task, error)

	// UpdateTask applies p to the task only if it is owned by userID. The new
	// updated_at is now, or one microsecond past the stored value if that is
	// later. ErrNotFound when no row matched.
	UpdateTask(ctx context.Context, id, userID int64, p domain.TaskPatch, now time.Time) (domain.Task, error)

	// DeleteTask removes the task only if it is owned by userID.
	// ErrNotFound when no row matched.
	DeleteTask(ctx context.Context, id, userID int64) error
}
