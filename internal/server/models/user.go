package models

import "time"

// User is an account of the storefront. Password holds the bcrypt hash and is
// never serialised. ResetToken and ResetTokenExpiry are set together by a
// reset request and cleared together when the token is consumed.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Password         string     `json:"-"`
	Permissions      []string   `json:"permissions"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// HasPendingReset reports whether a reset token is outstanding and still
// valid at now.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now)
}

// Clone returns a deep copy so callers can hand out users without sharing
// the permission slice or pointer fields.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Permissions = append([]string(nil), u.Permissions...)
	if u.ResetToken != nil {
		tok := *u.ResetToken
		c.ResetToken = &tok
	}
	if u.ResetTokenExpiry != nil {
		exp := *u.ResetTokenExpiry
		c.ResetTokenExpiry = &exp
	}
	return &c
}
