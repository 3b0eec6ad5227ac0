package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_HasPendingReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tok := "abc"
	later := now.Add(time.Minute)
	earlier := now.Add(-time.Minute)

	assert.False(t, (&User{}).HasPendingReset(now))
	assert.False(t, (&User{ResetToken: &tok}).HasPendingReset(now))
	assert.True(t, (&User{ResetToken: &tok, ResetTokenExpiry: &later}).HasPendingReset(now))
	assert.False(t, (&User{ResetToken: &tok, ResetTokenExpiry: &earlier}).HasPendingReset(now))
	assert.False(t, (&User{ResetToken: &tok, ResetTokenExpiry: &now}).HasPendingReset(now), "expiry equal to now is already expired")
}

func TestUser_CloneIsDeep(t *testing.T) {
	tok := "abc"
	exp := time.Now()
	u := &User{ID: "1", Permissions: []string{"USER"}, ResetToken: &tok, ResetTokenExpiry: &exp}

	c := u.Clone()
	c.Permissions[0] = "ADMIN"
	*c.ResetToken = "zzz"

	assert.Equal(t, "USER", u.Permissions[0])
	assert.Equal(t, "abc", *u.ResetToken)
	assert.Nil(t, (*User)(nil).Clone())
}

func TestUser_JSONHidesSecrets(t *testing.T) {
	tok := "secret-reset"
	u := User{ID: "1", Email: "a@b.co", Password: "$2a$hash", ResetToken: &tok}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "$2a$hash")
	assert.NotContains(t, string(b), "secret-reset")
	assert.Contains(t, string(b), `"email":"a@b.co"`)
}
