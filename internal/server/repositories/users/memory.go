package users

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It backs the server when
// no database is configured and serves as a fake in tests. All methods hand
// out copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, common.ErrEmailTaken
	}

	u := user.Clone()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if len(u.Permissions) == 0 {
		u.Permissions = []string{common.DefaultPermission}
	}
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now

	r.byID[u.ID] = u
	r.byEmail[email] = u.ID

	return u.Clone(), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryRepository) findByResetToken(token string, now time.Time) *models.User {
	for _, u := range r.byID {
		if u.ResetToken != nil && *u.ResetToken == token && u.HasPendingReset(now) {
			return u
		}
	}
	return nil
}

func (r *MemoryRepository) GetByResetToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.findByResetToken(token, now)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.byID))
	for _, u := range r.byID {
		result = append(result, u.Clone())
	}
	slices.SortFunc(result, func(a, b *models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})
	return result, nil
}

func (r *MemoryRepository) SetResetToken(_ context.Context, userID, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	u.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepository) ConsumeResetToken(_ context.Context, token string, now time.Time, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.findByResetToken(token, now)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	u.Password = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	u.UpdatedAt = r.now()
	return u.Clone(), nil
}

func (r *MemoryRepository) UpdatePermissions(_ context.Context, userID string, permissions []string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Permissions = slices.Clone(permissions)
	u.UpdatedAt = r.now()
	return u.Clone(), nil
}
