package tasks_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tasktrack/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// TestTaskFlow walks register, login, create, filter, delete and the
// follow-up 404 against PostgreSQL.
func TestTaskFlow(t *testing.T) {
	client := setupApp(t)
	session := registerSession(t, client, "a@b.com")
	ctx := t.Context()

	created, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "Test task"})
	require.NoError(t, err)
	require.Equal(t, tasksdk.StatusTodo, created.Status)
	require.Positive(t, created.ID)

	done, err := session.ListTasks(ctx, tasksdk.ListOptions{Status: tasksdk.StatusDone})
	require.NoError(t, err)
	require.Empty(t, done.Data)
	require.NotNil(t, done.Data)

	require.NoError(t, session.DeleteTask(ctx, created.ID))

	_, err = session.GetTask(ctx, created.ID)
	requireStatus(t, err, http.StatusNotFound, "Task not found")
}

// TestDuplicateRegistration checks emails collide after normalisation.
func TestDuplicateRegistration(t *testing.T) {
	client := setupApp(t)
	registerSession(t, client, "dup@example.com")

	_, err := client.Register(t.Context(), "DUP@example.com", testPassword)
	requireStatus(t, err, http.StatusBadRequest, "Email already in use")
}

func TestLoginFailures(t *testing.T) {
	client := setupApp(t)
	registerSession(t, client, "me@example.com")

	_, err := client.Login(t.Context(), "me@example.com", "Password124")
	requireStatus(t, err, http.StatusUnauthorized, "Invalid credentials")

	_, err = client.Login(t.Context(), "nobody@example.com", testPassword)
	requireStatus(t, err, http.StatusNotFound, "Invalid credentials")

	_, err = client.NewSessionFromToken("not-a-jwt").ListTasks(t.Context(), tasksdk.ListOptions{})
	requireStatus(t, err, http.StatusUnauthorized, "Invalid or expired token")
}

func TestUpdateAndOwnership(t *testing.T) {
	client := setupApp(t)
	alice := registerSession(t, client, "alice@example.com")
	bob := registerSession(t, client, "bob@example.com")
	ctx := t.Context()

	created, err := alice.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "Original", Description: ptr("notes")})
	require.NoError(t, err)

	updated, err := alice.UpdateTask(ctx, created.ID, tasksdk.UpdateTaskRequest{Status: ptr(tasksdk.StatusInProgress)})
	require.NoError(t, err)
	require.Equal(t, "Original", updated.Title)
	require.Equal(t, "notes", *updated.Description)
	require.Equal(t, tasksdk.StatusInProgress, updated.Status)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = bob.UpdateTask(ctx, created.ID, tasksdk.UpdateTaskRequest{Title: ptr("Hijacked")})
	requireStatus(t, err, http.StatusForbidden, "Not authorised to access this task")

	err = bob.DeleteTask(ctx, created.ID)
	requireStatus(t, err, http.StatusForbidden, "Not authorised to access this task")

	_, err = alice.UpdateTask(ctx, created.ID, tasksdk.UpdateTaskRequest{Title: ptr("ab")})
	requireStatus(t, err, http.StatusBadRequest, "Title must be at least 3 characters long")

	got, err := alice.GetTask(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Original", got.Title)
}

func TestListPagination(t *testing.T) {
	client := setupApp(t)
	session := registerSession(t, client, "pager@example.com")
	ctx := t.Context()

	for i := range 5 {
		status := tasksdk.StatusTodo
		if i%2 == 0 {
			status = tasksdk.StatusDone
		}
		_, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: fmt.Sprintf("Task %d", i), Status: status})
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		opts      tasksdk.ListOptions
		wantLen   int
		wantTotal int64
		wantPages int64
		wantFirst string
	}{
		{"defaults", tasksdk.ListOptions{}, 5, 5, 1, "Task 4"},
		{"ascending", tasksdk.ListOptions{Order: "asc"}, 5, 5, 1, "Task 0"},
		{"last page", tasksdk.ListOptions{Limit: 2, Page: 3}, 1, 5, 3, "Task 0"},
		{"done by updatedAt", tasksdk.ListOptions{Status: tasksdk.StatusDone, Sort: "updatedAt", Order: "asc"}, 3, 3, 1, "Task 0"},
		{"todo one per page", tasksdk.ListOptions{Status: tasksdk.StatusTodo, Limit: 1}, 1, 2, 2, "Task 3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := session.ListTasks(ctx, tc.opts)
			require.NoError(t, err)
			require.Len(t, page.Data, tc.wantLen)
			require.Equal(t, tc.wantTotal, page.Pagination.Total)
			require.Equal(t, tc.wantPages, page.Pagination.TotalPages)
			require.Equal(t, tc.wantFirst, page.Data[0].Title)
		})
	}

	beyond, err := session.ListTasks(ctx, tasksdk.ListOptions{Page: 50})
	require.NoError(t, err)
	require.Empty(t, beyond.Data)
	require.Equal(t, int64(5), beyond.Pagination.Total)

	_, err = session.ListTasks(ctx, tasksdk.ListOptions{Status: "later"})
	requireStatus(t, err, http.StatusBadRequest, "Invalid status filter")
}

func TestHealth(t *testing.T) {
	client := setupApp(t)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
