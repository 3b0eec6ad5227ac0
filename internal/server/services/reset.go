package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/users"
)

// resetTokenBytes is the entropy of a reset token; its hex form is twice as long.
const resetTokenBytes = 20

const resetMailSubject = "Your Password Reset Token"

var resetMailTemplate = template.Must(template.New("reset").Parse(`<div style="border: 1px solid black; padding: 20px; font-family: sans-serif; line-height: 2; font-size: 20px;">
  <h2>Hello There!</h2>
  <p>Your Password Reset Token is here!</p>
  <p><a href="{{.Link}}">Click Here to Reset</a></p>
  <p>This link expires in {{.TTL}}.</p>
</div>`))

type ResetPasswordInput struct {
	ResetToken      string `json:"resetToken"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// RequestReset issues a single-use reset token for email, valid for the
// configured TTL, and mails a link carrying it. An unknown email yields
// common.ErrUserNotFound. Mail delivery failures are logged, not returned.
func (s *UserService) RequestReset(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	email = normalizeEmail(email)

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn(ctx, "reset limiter unavailable", "error", err)
		} else if !ok {
			return common.ErrTooManyResetRequests
		}
	}

	token, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}
	expiry := s.clock.Now().Add(s.resetTokenTTL)

	var user *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		var err error
		user, err = repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return repo.SetResetToken(ctx, user.ID, token, expiry)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error storing reset token: %w", err)
	}

	s.log.Info(ctx, "password reset requested", "user_id", user.ID, "expires", expiry)
	s.sendResetMail(ctx, user.Email, token)
	return nil
}

func (s *UserService) sendResetMail(ctx context.Context, to, token string) {
	var body bytes.Buffer
	err := resetMailTemplate.Execute(&body, struct {
		Link string
		TTL  time.Duration
	}{
		Link: s.resetLink(token),
		TTL:  s.resetTokenTTL,
	})
	if err == nil {
		err = s.mailer.SendHTML([]string{to}, resetMailSubject, body.String())
	}
	if err != nil {
		s.log.Error(ctx, "failed to send reset mail", "to", to, "error", err)
	}
}

func (s *UserService) resetLink(token string) string {
	return strings.TrimRight(s.frontendURL, "/") + "/reset?resetToken=" + url.QueryEscape(token)
}

// ResetPassword consumes a live reset token, stores the new password and
// starts a session. The token works once; a reused, unknown or expired
// token yields common.ErrInvalidOrExpiredToken.
func (s *UserService) ResetPassword(ctx context.Context, in ResetPasswordInput) (*AuthResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, common.ErrPasswordMismatch
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repomanager.Users().ConsumeResetToken(ctx, in.ResetToken, s.clock.Now(), hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidOrExpiredToken
		}
		return nil, fmt.Errorf("error consuming reset token: %w", err)
	}

	s.log.Info(ctx, "password reset", "user_id", user.ID)
	return s.startSession(user)
}
