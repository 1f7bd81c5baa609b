package relayer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRelayerServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/command/{commandId}/{chainName}", handler)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestCommandStatus_Executed(t *testing.T) {
	srv := newRelayerServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0xcc", chi.URLParam(r, "commandId"))
		assert.Equal(t, "polygon", chi.URLParam(r, "chainName"))
		_, _ = w.Write([]byte(`{"executed":true,"pending":false,"txHash":"0xdd"}`))
	})

	c, err := NewHTTPClient(Config{BaseURL: srv.URL + "/"}, zap.NewNop())
	require.NoError(t, err)

	status, err := c.CommandStatus(context.Background(), "0xcc", "polygon")
	require.NoError(t, err)
	assert.Equal(t, Status{Executed: true, TxHash: "0xdd"}, status)
}

func TestCommandStatus_DataEnvelope(t *testing.T) {
	srv := newRelayerServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"executed":false,"pending":true}}`))
	})

	c, err := NewHTTPClient(Config{BaseURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)

	status, err := c.CommandStatus(context.Background(), "0xcc", "ethereum")
	require.NoError(t, err)
	assert.True(t, status.Pending)
	assert.False(t, status.Executed)
	assert.Empty(t, status.TxHash)
}

func TestCommandStatus_Errors(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		body  string
		check func(t *testing.T, err error)
	}{
		{
			name: "server error",
			code: http.StatusInternalServerError,
			body: "boom",
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.Code)
				assert.Equal(t, "boom", se.Body)
			},
		},
		{
			name: "not json",
			code: http.StatusOK,
			body: "<html>",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name: "missing fields",
			code: http.StatusOK,
			body: `{"status":"ok"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRelayerServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			})
			c, err := NewHTTPClient(Config{BaseURL: srv.URL}, zap.NewNop())
			require.NoError(t, err)

			_, err = c.CommandStatus(context.Background(), "0xcc", "polygon")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestCommandStatus_RateLimited(t *testing.T) {
	var hits atomic.Int32
	srv := newRelayerServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"executed":false,"pending":true}`))
	})

	c, err := NewHTTPClient(Config{BaseURL: srv.URL, RateLimit: 1, RateBurst: 1}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.CommandStatus(context.Background(), "0x01", "polygon")
	require.NoError(t, err)

	// the second request has to wait ~1s for a token
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.CommandStatus(ctx, "0x02", "polygon")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPClient(Config{BaseURL: "not a url"}, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for invalid base url")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Fatal("unexpected error kind")
	}
}
