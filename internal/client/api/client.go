// Package api is the HTTP client of the storefront API used by the CLI.
//
// The session cookie set by signup, signin and reset-password is kept in a
// cookie jar and sent back on every following request, the same way a
// browser does. Calls decode the {"data":…,"error":…} envelope; a non-2xx
// answer becomes a *ResponseError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// User mirrors the public fields of an account as returned by the server.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type message struct {
	Message string `json:"message"`
}

// Client talks to one storefront server. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL (e.g. "http://127.0.0.1:4444").
// timeout bounds every request; zero means no limit.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// Signup creates an account and starts a session for it.
func (c *Client) Signup(ctx context.Context, email, name string, password []byte) (*User, error) {
	body := map[string]string{"email": email, "name": name, "password": string(password)}
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/signup", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Signin starts a session for an existing account.
func (c *Client) Signin(ctx context.Context, email string, password []byte) (*User, error) {
	body := map[string]string{"email": email, "password": string(password)}
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/signin", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Signout asks the server to clear the session cookie and returns its
// farewell message.
func (c *Client) Signout(ctx context.Context) (string, error) {
	var m message
	if err := c.do(ctx, http.MethodPost, "/api/signout", nil, &m); err != nil {
		return "", err
	}
	return m.Message, nil
}

// Me returns the signed-in user, or nil when the session is anonymous.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u *User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &u); err != nil {
		return nil, err
	}
	return u, nil
}

// Users lists every account. Requires ADMIN or PERMISSIONUPDATE.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var list []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdatePermissions replaces the permission labels of userID.
func (c *Client) UpdatePermissions(ctx context.Context, userID string, permissions []string) (*User, error) {
	body := map[string][]string{"permissions": permissions}
	var u User
	path := "/api/users/" + url.PathEscape(userID) + "/permissions"
	if err := c.do(ctx, http.MethodPut, path, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RequestReset asks the server to mail a reset link to email.
func (c *Client) RequestReset(ctx context.Context, email string) (string, error) {
	var m message
	if err := c.do(ctx, http.MethodPost, "/api/request-reset", map[string]string{"email": email}, &m); err != nil {
		return "", err
	}
	return m.Message, nil
}

// ResetPassword consumes a reset token and signs the user in.
func (c *Client) ResetPassword(ctx context.Context, token string, password, confirm []byte) (*User, error) {
	body := map[string]string{
		"resetToken":      token,
		"password":        string(password),
		"confirmPassword": string(confirm),
	}
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/reset-password", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := &ResponseError{StatusCode: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			re.Code = env.Error.Code
			re.Message = env.Error.Message
		}
		return re
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
