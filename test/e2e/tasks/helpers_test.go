package tasks_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/app"
	"github.com/aussiebroadwan/tasktrack/pkg/tasksdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end helpers: a PostgreSQL container per test and the fully wired
 * application in process, driven through tasksdk.
 */

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "tasks"
	pgPassword = "tasks-password"
	pgDatabase = "tasks"

	testPassword = "Password123"
)

// setupPostgres starts a throwaway PostgreSQL and returns its host and port.
func setupPostgres(t *testing.T) (string, int) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        pgImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       pgDatabase,
		},
		// The server restarts once after init; the second line is the real one.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return host, mappedPort.Int()
}

// setupApp wires the application against a fresh database and returns a
// client for it.
func setupApp(t *testing.T) *tasksdk.SDKClient {
	t.Helper()
	host, port := setupPostgres(t)

	cfg := app.Config{
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		ShutdownGracePeriod: 5 * time.Second,
		DatabaseDriver:      app.DriverPostgres,
		Postgres: app.PostgresConfig{
			Host:           host,
			Port:           port,
			User:           pgUser,
			Password:       pgPassword,
			Database:       pgDatabase,
			SSLMode:        "disable",
			MaxConns:       4,
			ConnectTimeout: 10 * time.Second,
			PingTimeout:    10 * time.Second,
		},
		JWTSecret:  strings.Repeat("e", 32),
		JWTIssuer:  "tasktrack",
		TokenTTL:   time.Hour,
		PepperFile: filepath.Join(t.TempDir(), "pepper"),
	}

	application, err := app.New(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	client := tasksdk.NewSDKClient(srv.URL)
	client.HTTPClient = srv.Client()
	return client
}

// registerSession creates an account and logs it in.
func registerSession(t *testing.T, client *tasksdk.SDKClient, email string) *tasksdk.Session {
	t.Helper()

	user, err := client.Register(t.Context(), email, testPassword)
	require.NoError(t, err)
	require.Positive(t, user.User.ID)

	session, err := client.Login(t.Context(), email, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token())
	return session
}

// requireStatus asserts err is an API error with the given status and message.
func requireStatus(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var apiErr *tasksdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.StatusCode)
	require.Equal(t, msg, apiErr.Message)
}

func ptr[T any](v T) *T { return &v }
