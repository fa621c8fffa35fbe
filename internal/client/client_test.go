package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bigboy/appconfig/internal/endpoint"
	"github.com/bigboy/appconfig/internal/storage"
	"github.com/bigboy/appconfig/internal/storagekeys"
)

func newTestClient(t *testing.T) (*Client, storage.Storage) {
	t.Helper()
	ep, err := endpoint.New("http://localhost:4000")
	require.NoError(t, err)
	store := storage.NewMemoryStorage(storagekeys.Default())
	c := New(ep, store, storagekeys.Default(), zaptest.NewLogger(t), WithRetryMax(0))
	httpmock.ActivateNonDefault(c.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return c, store
}

func TestHealth(t *testing.T) {
	c, _ := newTestClient(t)
	httpmock.RegisterResponder(
		"GET",
		"http://localhost:4000/health",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]string{
			"status": "ok", "message": "BigBoy API is running", "version": "1.0.0",
		}),
	)

	hs, err := c.Health(context.Background())
	if assert.NoError(t, err) {
		assert.Equal(t, "ok", hs.Status)
		assert.Equal(t, "1.0.0", hs.Version)
	}
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("should send access token when logged in", func(t *testing.T) {
		// given
		c, _ := newTestClient(t)
		require.NoError(t, c.SaveSession(ctx, "customer-token", map[string]int{"id": 7}))
		require.NoError(t, c.SaveGuestSession(ctx, "guest-token", "table-3"))
		httpmock.RegisterResponder("GET", "http://localhost:4000/api/v1/membership/my-tier",
			func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "Bearer customer-token", req.Header.Get("Authorization"))
				return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"data": map[string]string{"current_tier": "SILVER"}})
			})

		// when
		var body struct {
			Data struct {
				CurrentTier string `json:"current_tier"`
			} `json:"data"`
		}
		err := c.GetJSON(ctx, "/membership/my-tier", &body)

		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "SILVER", body.Data.CurrentTier)
		}
	})
	t.Run("should fall back to guest token", func(t *testing.T) {
		c, _ := newTestClient(t)
		require.NoError(t, c.SaveGuestSession(ctx, "guest-token", "table-3"))
		httpmock.RegisterResponder("GET", "http://localhost:4000/api/v1/guest/menu",
			func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "Bearer guest-token", req.Header.Get("Authorization"))
				return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
			})

		assert.NoError(t, c.GetJSON(ctx, "guest/menu", nil))
	})
	t.Run("should send no token when anonymous", func(t *testing.T) {
		c, _ := newTestClient(t)
		httpmock.RegisterResponder("GET", "http://localhost:4000/api/v1/membership/tiers",
			func(req *http.Request) (*http.Response, error) {
				assert.Empty(t, req.Header.Get("Authorization"))
				return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
			})

		assert.NoError(t, c.GetJSON(ctx, "membership/tiers", nil))
	})
	t.Run("should map 401 to ErrUnauthorized", func(t *testing.T) {
		c, _ := newTestClient(t)
		httpmock.RegisterResponder("GET", "http://localhost:4000/api/v1/membership/my-tier",
			httpmock.NewStringResponder(http.StatusUnauthorized, `{"message":"Authorization required"}`))

		err := c.GetJSON(ctx, "membership/my-tier", nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
	t.Run("should return status errors", func(t *testing.T) {
		c, _ := newTestClient(t)
		httpmock.RegisterResponder("GET", "http://localhost:4000/api/v1/tables/99",
			httpmock.NewStringResponder(http.StatusNotFound, `{"message":"Table not found"}`))

		err := c.GetJSON(ctx, "tables/99", nil)
		var statusErr *StatusError
		if assert.True(t, errors.As(err, &statusErr)) {
			assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
			assert.Contains(t, statusErr.Body, "Table not found")
		}
	})
	t.Run("should return server errors after retries", func(t *testing.T) {
		c, _ := newTestClient(t)
		httpmock.RegisterResponder("GET", "http://localhost:4000/api/v1/orders",
			httpmock.NewStringResponder(http.StatusInternalServerError, `{"message":"db down"}`))

		err := c.GetJSON(ctx, "orders", nil)
		var statusErr *StatusError
		if assert.True(t, errors.As(err, &statusErr)) {
			assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
			assert.Contains(t, statusErr.Body, "db down")
		}
	})
	t.Run("should fail on invalid JSON", func(t *testing.T) {
		c, _ := newTestClient(t)
		httpmock.RegisterResponder("GET", "http://localhost:4000/api/v1/broken",
			httpmock.NewStringResponder(http.StatusOK, `{`))

		var out map[string]any
		assert.Error(t, c.GetJSON(ctx, "broken", &out))
	})
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	c, store := newTestClient(t)

	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	var u user
	ok, err := c.User(ctx, &u)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SaveSession(ctx, "tok", user{ID: 1, Name: "An"}))
	raw, err := store.Get(ctx, storagekeys.UserData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"An"}`, raw)

	ok, err = c.User(ctx, &u)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, user{ID: 1, Name: "An"}, u)

	require.NoError(t, c.SaveGuestSession(ctx, "g", "t"))
	require.NoError(t, c.ClearSession(ctx))
	for _, k := range storagekeys.Default().All() {
		_, err := store.Get(ctx, k)
		assert.ErrorIs(t, err, storage.ErrNotFound, k)
	}
}
