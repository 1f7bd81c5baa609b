package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/DINetworks/DI-U2U/pkg/app/errors"
	"github.com/DINetworks/DI-U2U/pkg/config"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServeAndWait_ShutsDownOnCancel(t *testing.T) {
	port := freePort(t)
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: port, ShutdownTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeAndWait(ctx, http.NotFoundHandler(), zap.NewNop(), cfg)
	}()

	url := "http://" + cfg.ListenAddr()
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeAndWait_NilArguments(t *testing.T) {
	if err := ServeAndWait(context.Background(), nil, zap.NewNop(), &config.ServerConfig{}); err == nil {
		t.Error("expected error for nil handler")
	}
	if err := ServeAndWait(context.Background(), http.NotFoundHandler(), zap.NewNop(), nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"service error", apperrors.ResourceNotFoundError(nil, "transaction not found"), http.StatusNotFound, "transaction not found"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Unexpected Service Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HandleError(zap.NewNop(), func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != tt.code {
				t.Fatalf("expected status %d, got %d", tt.code, rec.Code)
			}
			var got errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode response JSON: %v", err)
			}
			if got.ErrMsg != tt.message || got.ErrMsgCode != tt.code {
				t.Fatalf("unexpected body %+v", got)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Amount string `json:"amount"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"1"}`))
	if err := DecodeJSON(rec, req, &v); err != nil || v.Amount != "1" {
		t.Fatalf("expected amount 1, got %q (%v)", v.Amount, err)
	}

	for _, body := range []string{"{invalid", `{"amount":"1","extra":true}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSON(rec, req, &v)
		if !apperrors.Is(err, apperrors.CategoryDataError) {
			t.Errorf("%s: expected data error, got %v", body, err)
		}
	}
}
