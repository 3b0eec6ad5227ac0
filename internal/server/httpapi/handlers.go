package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/apierrors"
	"github.com/dmitrijs2005/storefront/internal/server/response"
	"github.com/dmitrijs2005/storefront/internal/server/services"
	"github.com/dmitrijs2005/storefront/internal/server/session"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type message struct {
	Message string `json:"message"`
}

type requestResetBody struct {
	Email string `json:"email"`
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierrors.ErrBadRequest.WithMessage("invalid JSON body")
	}
	return nil
}

// fail writes err and logs it when it maps to a server error.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr := apierrors.AsAPIError(err); apiErr.StatusCode >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	response.Error(w, err)
}

func (s *HTTPServer) signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if err := decode(w, r, &in); err != nil {
		response.Error(w, err)
		return
	}

	res, err := s.users.Signup(r.Context(), in)
	s.metrics.AuthEvent("signup", err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	session.SetToken(w, res.Token, s.cookie)
	response.Created(w, res.User)
}

func (s *HTTPServer) signin(w http.ResponseWriter, r *http.Request) {
	var in services.SigninInput
	if err := decode(w, r, &in); err != nil {
		response.Error(w, err)
		return
	}

	res, err := s.users.Signin(r.Context(), in)
	s.metrics.AuthEvent("signin", err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	session.SetToken(w, res.Token, s.cookie)
	response.OK(w, res.User)
}

func (s *HTTPServer) signout(w http.ResponseWriter, r *http.Request) {
	session.ClearToken(w, s.cookie)
	s.metrics.AuthEvent("signout", nil)
	response.OK(w, message{Message: "Goodbye!"})
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	u := session.UserFromContext(r.Context())
	if u == nil {
		response.OK(w, nil)
		return
	}
	response.OK(w, u)
}

func (s *HTTPServer) requestReset(w http.ResponseWriter, r *http.Request) {
	var in requestResetBody
	if err := decode(w, r, &in); err != nil {
		response.Error(w, err)
		return
	}

	err := s.users.RequestReset(r.Context(), in.Email)
	s.metrics.AuthEvent("request_reset", err)
	if err != nil {
		if errors.Is(err, common.ErrTooManyResetRequests) {
			w.Header().Set("Retry-After", "3600")
		}
		s.fail(w, r, err)
		return
	}

	response.OK(w, message{Message: "Thanks!"})
}

func (s *HTTPServer) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in services.ResetPasswordInput
	if err := decode(w, r, &in); err != nil {
		response.Error(w, err)
		return
	}

	res, err := s.users.ResetPassword(r.Context(), in)
	s.metrics.AuthEvent("reset_password", err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	session.SetToken(w, res.Token, s.cookie)
	response.OK(w, res.User)
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.Users(r.Context(), session.UserFromContext(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	response.OK(w, list)
}

func (s *HTTPServer) updatePermissions(w http.ResponseWriter, r *http.Request) {
	var in services.UpdatePermissionsInput
	if err := decode(w, r, &in); err != nil {
		response.Error(w, err)
		return
	}

	u, err := s.users.UpdatePermissions(r.Context(), session.UserFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	response.OK(w, u)
}
