// Package common contains shared constants and sentinel errors used across
// storefront components.
package common

// SessionCookieName is the cookie that carries the signed session token
// between the browser (or CLI cookie jar) and the server.
const SessionCookieName = "token"

// DefaultPermission is granted to every account at signup.
const DefaultPermission = "USER"
