package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := ValidationError("title too long").WithCode("TITLE_LEN").WithContext("max", 200)

	msg := err.Error()
	if !strings.Contains(msg, "validation") {
		t.Errorf("Error() missing type: %q", msg)
	}
	if !strings.Contains(msg, "title too long") {
		t.Errorf("Error() missing message: %q", msg)
	}
	if !strings.Contains(msg, "code=TITLE_LEN") {
		t.Errorf("Error() missing code: %q", msg)
	}
	if !strings.Contains(msg, "max=200") {
		t.Errorf("Error() missing context: %q", msg)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := ConnectionError("mongo unreachable", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{ValidationError("bad body"), http.StatusBadRequest},
		{AuthError("missing token"), http.StatusUnauthorized},
		{NotFoundError("session"), http.StatusNotFound},
		{ConflictError("username taken"), http.StatusConflict},
		{RateLimitError("ai"), http.StatusTooManyRequests},
		{UpstreamError("model returned garbage", nil), http.StatusBadGateway},
		{TimeoutError("completion"), http.StatusGatewayTimeout},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{ConfigError("bad config"), http.StatusInternalServerError},
		{ConnectionError("redis down", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsType(t *testing.T) {
	err := NotFoundError("session")

	if !IsType(err, ErrTypeNotFound) {
		t.Error("IsType() should match not_found")
	}
	if IsType(err, ErrTypeValidation) {
		t.Error("IsType() should not match validation")
	}
	if IsType(nil, ErrTypeNotFound) {
		t.Error("IsType(nil) should be false")
	}
	if IsType(fmt.Errorf("plain"), ErrTypeNotFound) {
		t.Error("IsType() should be false for plain errors")
	}
}

func TestGetType(t *testing.T) {
	if GetType(nil) != "" {
		t.Error("GetType(nil) should be empty")
	}
	if GetType(fmt.Errorf("plain")) != ErrTypeInternal {
		t.Error("GetType(plain) should default to internal")
	}
	if GetType(UpstreamError("bad", nil)) != ErrTypeUpstream {
		t.Error("GetType() should return the AppError type")
	}
}
