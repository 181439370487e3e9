package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fcinventory/backend/internal/infrastructure/config"
	"github.com/fcinventory/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testAppConfig() config.AppConfig {
	return config.AppConfig{
		Name:        "fc-inventory",
		Env:         "test",
		OrgName:     "Foot Clinic",
		Title:       "Inventory",
		Description: "Stock and sales",
	}
}

func TestNewSystemHandler(t *testing.T) {
	h := NewSystemHandler(testAppConfig(), "0.1.0", stubPinger{})
	assert.NotNil(t, h)
	assert.False(t, h.startTime.IsZero())
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler(testAppConfig(), "0.1.0", stubPinger{})

	c, w := newTestContext()
	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Foot Clinic | Inventory", data["title"])
	assert.Equal(t, "Stock and sales", data["description"])
	assert.Equal(t, "0.1.0", data["version"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("ok when the database answers", func(t *testing.T) {
		h := NewSystemHandler(testAppConfig(), "0.1.0", stubPinger{})
		c, w := newTestContext()
		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, "ok", data["status"])
	})

	t.Run("503 when the database is down", func(t *testing.T) {
		h := NewSystemHandler(testAppConfig(), "0.1.0", stubPinger{err: errors.New("database is closed")})
		c, w := newTestContext()
		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeUnavailable, resp.Error.Code)
	})
}
