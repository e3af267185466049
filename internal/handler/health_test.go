package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePool struct {
	pingErr error
}

func (p *fakePool) Ping(ctx context.Context) error { return p.pingErr }
func (p *fakePool) Close()                         {}

func TestHandleHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealthz()(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleReadyz(t *testing.T) {
	t.Run("Database Reachable", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleReadyz(&fakePool{})(rec, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Database Down Reports Unavailable", func(t *testing.T) {
		rec := httptest.NewRecorder()
		pool := &fakePool{pingErr: errors.New("connection refused")}
		HandleReadyz(pool)(rec, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unavailable", resp.Status)
	})
}
