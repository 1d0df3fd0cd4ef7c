package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/service"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store"
	"github.com/aussiebroadwan/tasktrack/pkg/httpx"
	"github.com/aussiebroadwan/tasktrack/pkg/jwtx"
	"github.com/aussiebroadwan/tasktrack/pkg/slogx"
	"github.com/go-chi/chi/v5"

	_ "github.com/aussiebroadwan/tasktrack/api/tasks" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         chi.Router
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService *service.AuthService
	TaskService *service.TaskService

	// AuthRateLimit guards register and login. The zero value disables it.
	AuthRateLimit httpx.RateLimitConfig
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          chi.NewRouter(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	r.Mux.NotFound(routeNotFound)
	r.Mux.MethodNotAllowed(routeNotFound)

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Get("/swagger/*", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Task Tracker API
//	@version					0.1.0
//	@description				Personal task tracking. Accounts register and log in with email and password; every task operation is scoped to the bearer token's user.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tasktrack
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.Group(func(g chi.Router) {
		g.Use(httpx.RateLimitByIP(r.AuthRateLimit))
		g.Post("/auth/register", handle(h.HandleRegister))
		g.Post("/auth/login", handle(h.HandleLogin))
	})
}

// registerTasks puts every task route behind the bearer token gate. Group
// scopes the gate to these routes, so unknown paths still answer 404.
func (r *Router) registerTasks() {
	h := &TaskHandler{TaskService: r.TaskService}

	r.Mux.Group(func(g chi.Router) {
		g.Use(httpx.AuthnMiddleware(r.verifier))
		g.Post("/tasks", handle(h.HandleCreate))
		g.Get("/tasks", handle(h.HandleList))
		g.Get("/tasks/{id}", handle(h.HandleGet))
		g.Put("/tasks/{id}", handle(h.HandleUpdate))
		g.Delete("/tasks/{id}", handle(h.HandleDelete))
	})
}

func (r *Router) registerSystem() {
	r.Mux.Get("/livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Get("/readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
