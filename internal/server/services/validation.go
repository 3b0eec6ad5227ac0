package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^([\w.%+-]+)@([\w-]+\.)+(\w{2,})$`)

// MinPasswordLength is the shortest password accepted on signup and reset.
const MinPasswordLength = 6

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("shopemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	// bcrypt limits bytes, not characters.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.RuneCountInString(s) >= MinPasswordLength && len(s) <= auth.MaxPasswordBytes
	})
	_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		return auth.IsKnownPermission(fl.Field().String())
	})
	return v
}

// check runs struct validation and folds failures into one
// common.ErrorValidation error naming each offending field.
func (s *UserService) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "shopemail":
		return field + " is not a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "password":
		if s, _ := fe.Value().(string); len(s) > auth.MaxPasswordBytes {
			return fmt.Sprintf("%s must be at most %d bytes", field, auth.MaxPasswordBytes)
		}
		return fmt.Sprintf("%s must be at least %d characters", field, MinPasswordLength)
	case "permission":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(auth.AllPermissions, " "))
	default:
		return field + " is invalid"
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
