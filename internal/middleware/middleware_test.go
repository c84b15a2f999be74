package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/groomer-manager/internal/logger"
)

const secret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	valid := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 7, "role": "owner", "exp": time.Now().Add(time.Hour).Unix(),
	}, []byte(secret))
	expired := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 7, "exp": time.Now().Add(-time.Hour).Unix(),
	}, []byte(secret))
	otherKey := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 7, "exp": time.Now().Add(time.Hour).Unix(),
	}, []byte("another-secret"))
	noSubject := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, []byte(secret))
	hs512 := sign(t, jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": 7, "exp": time.Now().Add(time.Hour).Unix(),
	}, []byte(secret))

	tests := []struct {
		name     string
		header   string
		want     int
		wantCode string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "missing_authorization_header"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "invalid_authorization_header"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "invalid_token"},
		{"wrong key", "Bearer " + otherKey, http.StatusUnauthorized, "invalid_token"},
		{"other algorithm", "Bearer " + hs512, http.StatusUnauthorized, "invalid_token"},
		{"no subject", "Bearer " + noSubject, http.StatusUnauthorized, "invalid_token_payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", AuthMiddleware(secret), func(c *gin.Context) {
				if UserID(c) != 7 {
					t.Errorf("user id = %d, want 7", UserID(c))
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.wantCode != "" {
				var body struct {
					Code string `json:"error_code"`
				}
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body.Code != tt.wantCode {
					t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"allowed", http.MethodGet, "https://app.example.com", http.StatusOK, "https://app.example.com"},
		{"not allowed", http.MethodGet, "https://evil.example.com", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "https://app.example.com", http.StatusNoContent, "https://app.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "test", slog.LevelInfo)

	r := gin.New()
	r.Use(RequestLog(log))
	r.GET("/clients/:id", func(c *gin.Context) {
		if logger.RequestID(c.Request.Context()) != "req-1" {
			t.Errorf("request id not on context")
		}
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/clients/3", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get(HeaderRequestID) != "req-1" {
		t.Errorf("response id = %q", w.Header().Get(HeaderRequestID))
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line: %v\n%s", err, buf.String())
	}
	if entry["request_id"] != "req-1" || entry["path"] != "/clients/:id" || entry["level"] != "WARN" {
		t.Errorf("log entry = %v", entry)
	}
}

func TestRequestLogGeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLog(logger.NewWithWriter(&bytes.Buffer{}, "test", slog.LevelInfo)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(HeaderRequestID)) != 36 {
		t.Errorf("generated id = %q, want a uuid", w.Header().Get(HeaderRequestID))
	}
}

type memCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (m *memCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, 0, m.err
	}
	m.hits[key]++
	return m.hits[key], window, nil
}

func TestRateLimit(t *testing.T) {
	counter := &memCounter{hits: map[string]int64{}}
	r := gin.New()
	r.POST("/login", RateLimit(counter, "login", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	post := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}"))
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := post("10.0.0.1"); w.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d", i+1, w.Code)
		}
	}
	w := post("10.0.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "60" {
		t.Errorf("retry after = %q", w.Header().Get("Retry-After"))
	}

	if w := post("10.0.0.2"); w.Code != http.StatusOK {
		t.Errorf("other ip status = %d", w.Code)
	}

	counter.err = errors.New("redis down")
	if w := post("10.0.0.1"); w.Code != http.StatusOK {
		t.Errorf("counter failure status = %d, want pass through", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, "login", 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	}
}
