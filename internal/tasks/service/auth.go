package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/store"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/validation"
	"github.com/aussiebroadwan/tasktrack/pkg/cryptox"
	"github.com/aussiebroadwan/tasktrack/pkg/jwtx"
	"github.com/aussiebroadwan/tasktrack/pkg/slogx"
)

type AuthService struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// RegisteredUser is the public view of a new account.
type RegisteredUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates an account. The email is normalised before it is
// validated and stored.
func (s *AuthService) Register(ctx context.Context, email, password string) (RegisteredUser, error) {
	l := slogx.FromContext(ctx)
	email = validation.NormalizeEmail(email)

	if err := validation.EmailAndPassword(email, password); err != nil {
		return RegisteredUser{}, err
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return RegisteredUser{}, domain.Conflict(domain.MsgEmailInUse, nil)
	case !errors.Is(err, store.ErrNotFound):
		return RegisteredUser{}, domain.Internal(fmt.Errorf("lookup user: %w", err))
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return RegisteredUser{}, domain.Internal(fmt.Errorf("hash password: %w", err))
	}

	u, err := s.Store.Users().CreateUser(ctx, domain.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().Truncate(time.Microsecond),
	})
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, store.ErrAlreadyExists) {
			return RegisteredUser{}, domain.Conflict(domain.MsgEmailInUse, err)
		}
		return RegisteredUser{}, domain.Internal(fmt.Errorf("create user: %w", err))
	}

	l.Info("user registered", slog.Int64("user_id", u.ID))
	return RegisteredUser{ID: u.ID, Email: u.Email}, nil
}

// Login checks the credentials and issues a signed bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return "", domain.InvalidInput(domain.MsgRequiredMissing)
	}
	email = validation.NormalizeEmail(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.NotFound(domain.MsgInvalidCreds)
		}
		return "", domain.Internal(fmt.Errorf("lookup user: %w", err))
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed", slog.Int64("user_id", u.ID))
			return "", domain.Unauthorized(domain.MsgInvalidCreds)
		}
		return "", domain.Internal(fmt.Errorf("verify password: %w", err))
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	token, err := s.Signer.Sign(jwtx.NewAccessClaims(u.ID, u.Email, s.Issuer, ttl, s.now()))
	if err != nil {
		return "", domain.Internal(fmt.Errorf("sign token: %w", err))
	}
	return token, nil
}
