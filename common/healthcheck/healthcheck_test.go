package healthcheck

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, server *HealthCheckServer) (int, HealthCheckHttpResponse) {
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var res HealthCheckHttpResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	return rec.Code, res
}

func TestAllHealthy(t *testing.T) {
	server := NewHealthCheckServer()
	server.Register("ticking", func() (error, bool) { return nil, true })
	server.Register("metrics", func() (error, bool) { return nil, true })

	code, res := serve(t, server)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []HealthChecks{
		{Name: "ticking", Status: true},
		{Name: "metrics", Status: true},
	}, res.Checks)
}

func TestDegraded(t *testing.T) {
	server := NewHealthCheckServer()
	server.Register("ticking", func() (error, bool) { return nil, false })

	code, res := serve(t, server)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, res.Checks[0].Status)
}

func TestFailingChecker(t *testing.T) {
	server := NewHealthCheckServer()
	server.Register("ticking", func() (error, bool) { return nil, false })
	server.Register("metrics", func() (error, bool) { return errors.New("unreachable"), false })

	code, res := serve(t, server)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "unreachable", res.Checks[1].Error)
}
