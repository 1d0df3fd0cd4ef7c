package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/service"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/validation"
	"github.com/aussiebroadwan/tasktrack/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// CredentialsRequest is the body of both auth endpoints.
type CredentialsRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

type RegisterResponse struct {
	Message string                 `json:"message"`
	User    service.RegisteredUser `json:"user"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// HandleRegister godoc
//
//	@Summary		Register an account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CredentialsRequest	true	"Email and password"
//	@Success		201		{object}	RegisterResponse
//	@Failure		400		{object}	httpx.Message	"Validation failure or email already in use"
//	@Failure		429		{object}	httpx.Message
//	@Router			/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) error {
	b, err := decodeBody(w, r)
	if err != nil {
		return err
	}

	u, err := h.AuthService.Register(r.Context(),
		validation.Credential(b["email"]),
		validation.Credential(b["password"]),
	)
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: domain.MsgUserRegistered,
		User:    u,
	})
	return nil
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges credentials for a bearer token valid for one hour
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CredentialsRequest	true	"Email and password"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	httpx.Message	"Missing field"
//	@Failure		401		{object}	httpx.Message	"Wrong password"
//	@Failure		404		{object}	httpx.Message	"Unknown email"
//	@Failure		429		{object}	httpx.Message
//	@Router			/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	b, err := decodeBody(w, r)
	if err != nil {
		return err
	}

	token, err := h.AuthService.Login(r.Context(),
		validation.Credential(b["email"]),
		validation.Credential(b["password"]),
	)
	if err != nil {
		return err
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{Token: token})
	return nil
}
