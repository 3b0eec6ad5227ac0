// Package services contains server-side business logic. UserService owns the
// account lifecycle: signup, signin, the permission-gated admin operations
// and the password-reset flow. It is transport agnostic; the HTTP layer
// turns an AuthResult into a session cookie.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storefront/internal/timex"
	"github.com/go-playground/validator/v10"
)

// DefaultOperationTimeout bounds every service call, including the
// repository work it triggers.
const DefaultOperationTimeout = 10 * time.Second

// Mailer delivers an HTML message.
type Mailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// ResetLimiter throttles password reset requests per key (the email).
type ResetLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthResult is returned by operations that start a session.
type AuthResult struct {
	User  *models.User
	Token string
}

type UserService struct {
	repomanager   repomanager.RepositoryManager
	mailer        Mailer
	limiter       ResetLimiter
	clock         timex.Clock
	log           logging.Logger
	validate      *validator.Validate
	jwtSecret     []byte
	resetTokenTTL time.Duration
	frontendURL   string
	timeout       time.Duration
}

// Option customises a UserService.
type Option func(*UserService)

// WithClock replaces the wall clock used for reset-token expiry.
func WithClock(c timex.Clock) Option {
	return func(s *UserService) { s.clock = c }
}

// WithResetLimiter enables throttling of RequestReset.
func WithResetLimiter(l ResetLimiter) Option {
	return func(s *UserService) { s.limiter = l }
}

// WithTimeout overrides DefaultOperationTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *UserService) { s.timeout = d }
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, mail Mailer, cfg *config.Config, log logging.Logger, opts ...Option) *UserService {
	s := &UserService{
		repomanager:   m,
		mailer:        mail,
		clock:         timex.SystemClock{},
		log:           log.With("module", "users"),
		validate:      newValidator(),
		jwtSecret:     []byte(cfg.SecretKey),
		resetTokenTTL: cfg.ResetTokenTTL,
		frontendURL:   cfg.FrontendURL,
		timeout:       DefaultOperationTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
