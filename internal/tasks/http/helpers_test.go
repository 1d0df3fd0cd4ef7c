package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/tasktrack/internal/tasks/http"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/service"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasktrack/pkg/cryptox"
	"github.com/aussiebroadwan/tasktrack/pkg/httpx"
	"github.com/aussiebroadwan/tasktrack/pkg/jwtx"
	"github.com/aussiebroadwan/tasktrack/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "tasktrack"

var testSecret = []byte(strings.Repeat("s", 32))

type testAPI struct {
	t      *testing.T
	srv    *httptest.Server
	signer jwtx.Signer
}

func newTestAPI(t *testing.T, limit httpx.RateLimitConfig) *testAPI {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)

	router := httpapi.NewRouter(verifier, "test", st, slogx.Discard())
	router.AuthService = &service.AuthService{
		Store:    st,
		Hasher:   cryptox.NewPasswordHasher("pepper"),
		Signer:   signer,
		Issuer:   testIssuer,
		TokenTTL: time.Hour,
	}
	router.TaskService = &service.TaskService{Store: st}
	router.AuthRateLimit = limit
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testAPI{t: t, srv: srv, signer: signer}
}

// do sends body verbatim when it is a string, JSON-encoded otherwise.
func (a *testAPI) do(method, path, token string, body any) (int, http.Header, []byte) {
	a.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, rd)
	require.NoError(a.t, err)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.srv.Client().Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, resp.Header, raw
}

func (a *testAPI) decode(raw []byte, v any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(raw, v), string(raw))
}

// requireMessage asserts a {"message": ...} response.
func (a *testAPI) requireMessage(code int, raw []byte, wantCode int, wantMsg string) {
	a.t.Helper()
	require.Equal(a.t, wantCode, code, string(raw))
	var m httpx.Message
	a.decode(raw, &m)
	require.Equal(a.t, wantMsg, m.Message)
}

// login registers email and returns a bearer token for it.
func (a *testAPI) login(email string) string {
	a.t.Helper()
	creds := map[string]string{"email": email, "password": "Password123"}

	code, _, raw := a.do(http.MethodPost, "/auth/register", "", creds)
	require.Equal(a.t, http.StatusCreated, code, string(raw))

	code, _, raw = a.do(http.MethodPost, "/auth/login", "", creds)
	require.Equal(a.t, http.StatusOK, code, string(raw))

	var out httpapi.LoginResponse
	a.decode(raw, &out)
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

type taskJSON struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type pageJSON struct {
	Data       []taskJSON `json:"data"`
	Pagination struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalPages int64 `json:"totalPages"`
	} `json:"pagination"`
}

func (a *testAPI) createTask(token string, body any) taskJSON {
	a.t.Helper()
	code, _, raw := a.do(http.MethodPost, "/tasks", token, body)
	require.Equal(a.t, http.StatusCreated, code, string(raw))
	var task taskJSON
	a.decode(raw, &task)
	return task
}
