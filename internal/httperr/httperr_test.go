package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"not found", ErrBusiness("client_not_found"), http.StatusNotFound, "client_not_found"},
		{"wrapped", fmt.Errorf("update: %w", ErrBusiness("invalid_state")), http.StatusConflict, "invalid_state"},
		{"with detail", ErrBusinessf("invalid_range", "start %s after end", "x"), http.StatusBadRequest, "invalid_range"},
		{"corrupt", ErrBusiness("corrupt_reference"), http.StatusInternalServerError, "corrupt_reference"},
		{"unknown code", ErrBusiness("something_else"), http.StatusBadRequest, "something_else"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantErr {
				t.Errorf("error_code = %q, want %q", body.Code, tt.wantErr)
			}
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrBusinessf("dog_not_found", "id %d", 3))
	if !IsBusiness(err, "dog_not_found") {
		t.Fatal("expected dog_not_found")
	}
	if IsBusiness(err, "client_not_found") {
		t.Fatal("unexpected client_not_found")
	}
	if code, ok := CodeOf(err); !ok || code != "dog_not_found" {
		t.Fatalf("CodeOf = %q, %v", code, ok)
	}
}
