package response

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/apierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"message": "Goodbye!"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, map[string]any{"message": "Goodbye!"}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestOK_NullData(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, nil)

	assert.JSONEq(t, `{"data":null}`, rec.Body.String())
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, common.ErrNotAuthenticated)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"data":null,"error":{"code":"not_authenticated","message":"you must be logged in to do that"}}`, rec.Body.String())
}

func TestError_PassesAPIErrorThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apierrors.ErrBadRequest.WithMessage("invalid JSON body"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"data":null,"error":{"code":"bad_request","message":"invalid JSON body"}}`, rec.Body.String())
}

func TestJSON_EncodeFailureIsLoggedOnly(t *testing.T) {
	var logs bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(orig) })

	rec := httptest.NewRecorder()
	OK(rec, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "internal_error")
	assert.Contains(t, logs.String(), "failed to encode response")
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, 1)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
