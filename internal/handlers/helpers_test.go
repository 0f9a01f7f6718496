package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arifdn/inkpot/backend/validators"
	"github.com/labstack/echo/v4"
	"gotest.tools/assert"
)

// newTestContext builds an echo context around a JSON request body, the way
// the router would before invoking a handler.
func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asHTTPError asserts the handler failed with an echo HTTP error and returns it.
func asHTTPError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	assert.Assert(t, ok, "expected *echo.HTTPError, got %T: %v", err, err)
	return he
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
