package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogging(), ErrorHandler())
	r.POST("/test", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": GetRole(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func mustToken(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()
	token, err := GenerateToken(secret, role, ttl)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func mustSign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	noExpiry := mustSign(t, jwt.MapClaims{"role": "admin"})
	issuedLater := mustSign(t, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(2 * time.Hour).Unix(),
		"iat":  time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantRole   string
	}{
		{"valid_token", "Bearer " + mustToken(t, testSecret, "admin", time.Hour), http.StatusOK, "admin"},
		{"lowercase_scheme", "bearer " + mustToken(t, testSecret, "viewer", time.Hour), http.StatusOK, "viewer"},
		{"missing_header", "", http.StatusUnauthorized, ""},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"malformed_header", "Bearer", http.StatusUnauthorized, ""},
		{"garbage_token", "Bearer not.a.jwt", http.StatusUnauthorized, ""},
		{"wrong_secret", "Bearer " + mustToken(t, "other-secret", "admin", time.Hour), http.StatusUnauthorized, ""},
		{"expired", "Bearer " + mustToken(t, testSecret, "admin", -time.Minute), http.StatusUnauthorized, ""},
		{"alg_none", "Bearer " + noneToken, http.StatusUnauthorized, ""},
		{"no_expiry", "Bearer " + noExpiry, http.StatusUnauthorized, ""},
		{"issued_in_future", "Bearer " + issuedLater, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(setupAuthRouter(), tt.header)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			body := parseBody(t, rec)
			if tt.wantStatus == http.StatusOK {
				if body["role"] != tt.wantRole {
					t.Errorf("expected role %q, got %v", tt.wantRole, body["role"])
				}
				return
			}
			if body["success"] != false || body["error"] != "UNAUTHORIZED" {
				t.Errorf("expected UNAUTHORIZED envelope, got %v", body)
			}
		})
	}
}

func TestParseToken_Claims(t *testing.T) {
	token := mustToken(t, testSecret, "admin", time.Hour)

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Role != "admin" || claims.Issuer != tokenIssuer {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Errorf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestRequestLogging_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if _, err := uuid.Parse(rec.Header().Get("X-Request-ID")); err != nil {
		t.Errorf("expected generated request id, got %q", rec.Header().Get("X-Request-ID"))
	}

	inbound := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", inbound)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != inbound {
		t.Errorf("expected inbound request id %s to be propagated, got %s", inbound, rec.Header().Get("X-Request-ID"))
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "<script>")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "<script>" {
		t.Error("malformed inbound request id should be replaced")
	}
}

func TestErrorHandler_SkipsWrittenResponses(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
		_ = c.Error(http.ErrAbortHandler)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/written", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected handler's status to stand, got %d", rec.Code)
	}
}
