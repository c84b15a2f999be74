package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"99999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, w := testContext("/")
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			got, ok := idParam(c)
			if got != tt.want || ok != tt.ok {
				t.Errorf("idParam(%q) = %d, %v", tt.raw, got, ok)
			}
			if !ok && w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		ok       bool
		hasRange bool
	}{
		{"none", "", true, false},
		{"both", "?startDate=2024-01-01&endDate=2024-01-31", true, true},
		{"start only", "?startDate=2024-01-01", false, false},
		{"end only", "?endDate=2024-01-31", false, false},
		{"bad start", "?startDate=01/01/2024&endDate=2024-01-31", false, false},
		{"bad end", "?startDate=2024-01-01&endDate=soon", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("/" + tt.query)

			start, end, ok := dateRange(c)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if (start != nil) != tt.hasRange || (end != nil) != tt.hasRange {
				t.Errorf("range = %v..%v", start, end)
			}
			if !ok && w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
