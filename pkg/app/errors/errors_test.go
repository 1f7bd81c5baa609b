package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestServiceError_StatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{BadRequestError(nil, "bad"), http.StatusBadRequest},
		{ResourceNotFoundError(nil, "missing"), http.StatusNotFound},
		{NotSupportedError(nil, "disabled"), http.StatusMethodNotAllowed},
		{DependencyFailureError(errors.New("rpc down"), "wallet failed"), http.StatusBadGateway},
		{UnavailableError(nil, "starting"), http.StatusServiceUnavailable},
		{GeneralError(nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		var svcErr *ServiceError
		if !errors.As(tt.err, &svcErr) {
			t.Fatalf("expected ServiceError, got %T", tt.err)
		}
		if got := svcErr.StatusCode(); got != tt.want {
			t.Errorf("%s: expected %d, got %d", svcErr.Category, tt.want, got)
		}
	}
}

func TestServiceError_Wrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("submit: %w", DependencyFailureError(cause, "wallet failed"))

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if !Is(err, CategoryDependencyFailure) {
		t.Error("expected dependency failure category")
	}
	if !IsInternalError(err) {
		t.Error("expected dependency failure to be internal")
	}
	if IsInternalError(BadRequestError(nil, "bad")) {
		t.Error("expected bad request not to be internal")
	}
	if got := GeneralError(cause).Error(); got != "connection refused" {
		t.Errorf("expected underlying message, got %q", got)
	}
}
