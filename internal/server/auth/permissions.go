package auth

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// Permission labels known to the storefront.
const (
	PermissionAdmin            = "ADMIN"
	PermissionUser             = common.DefaultPermission
	PermissionItemCreate       = "ITEMCREATE"
	PermissionItemUpdate       = "ITEMUPDATE"
	PermissionItemDelete       = "ITEMDELETE"
	PermissionPermissionUpdate = "PERMISSIONUPDATE"
)

// AllPermissions lists every assignable label in display order.
var AllPermissions = []string{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

// IsKnownPermission reports whether p is one of AllPermissions.
func IsKnownPermission(p string) bool {
	return slices.Contains(AllPermissions, p)
}

// PermissionError is returned when a user holds none of the needed labels.
// It matches common.ErrInsufficientPermission with errors.Is.
type PermissionError struct {
	Needed []string
	Held   []string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: need one of [%s], have [%s]",
		common.ErrInsufficientPermission, strings.Join(e.Needed, ", "), strings.Join(e.Held, ", "))
}

func (e *PermissionError) Is(target error) bool {
	return target == common.ErrInsufficientPermission
}

// HasPermission lets the caller proceed when user holds at least one of the
// needed labels. A nil user fails with common.ErrNotAuthenticated whatever
// is needed; an empty needed set never matches.
func HasPermission(user *models.User, needed ...string) error {
	if user == nil {
		return common.ErrNotAuthenticated
	}

	for _, have := range user.Permissions {
		if slices.Contains(needed, have) {
			return nil
		}
	}

	return &PermissionError{Needed: needed, Held: user.Permissions}
}
