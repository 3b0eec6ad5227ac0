package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/users"
)

// permissionAdmins may list users and change their permissions.
var permissionAdmins = []string{auth.PermissionAdmin, auth.PermissionPermissionUpdate}

type SignupInput struct {
	Email    string `json:"email" validate:"required,max=254,shopemail"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,password"`
}

type SigninInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdatePermissionsInput struct {
	Permissions []string `json:"permissions" validate:"required,min=1,dive,permission"`
}

// Signup creates an account holding the default permission and starts a
// session for it. A taken email yields common.ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	in.Email = normalizeEmail(in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var created *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return common.ErrEmailTaken
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{
			Email:       in.Email,
			Name:        in.Name,
			Password:    hash,
			Permissions: []string{auth.PermissionUser},
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user signed up", "user_id", created.ID)
	return s.startSession(created)
}

// Signin checks credentials and starts a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Signin(ctx context.Context, in SigninInput) (*AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	in.Email = normalizeEmail(in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(in.Password, user.Password) {
		s.log.Warn(ctx, "failed signin", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	return s.startSession(user)
}

// Users lists every account. The actor must hold ADMIN or PERMISSIONUPDATE.
func (s *UserService) Users(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if err := auth.HasPermission(actor, permissionAdmins...); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	list, err := s.repomanager.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// UpdatePermissions replaces the permission set of userID. Duplicates are
// dropped keeping first occurrence order. The actor must hold ADMIN or
// PERMISSIONUPDATE.
func (s *UserService) UpdatePermissions(ctx context.Context, actor *models.User, userID string, in UpdatePermissionsInput) (*models.User, error) {
	if err := auth.HasPermission(actor, permissionAdmins...); err != nil {
		return nil, err
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	perms := dedupe(in.Permissions)

	var updated *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		var err error
		updated, err = repo.UpdatePermissions(ctx, userID, perms)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating permissions: %w", err)
	}

	s.log.Info(ctx, "permissions updated", "user_id", updated.ID, "by", actor.ID, "permissions", perms)
	return updated, nil
}

func (s *UserService) startSession(u *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(u.ID, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("error signing session token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func dedupe(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}
