package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/auth"
	"github.com/unimindapp/unimind-backend/internal/platform/apierr"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
)

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s *stubVerifier) Verify(context.Context, string) (*auth.Claims, error) {
	return s.claims, s.err
}

func TestRequireAuthRejectsThroughErrorTaxonomy(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	wantStatus := apierr.Unauthenticated(nil).Status
	wantCode := apierr.Unauthenticated(nil).Code

	cases := []struct {
		name   string
		header string
	}{
		{"missing token", ""},
		{"failing verifier", "Bearer bad.token.here"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			am := NewAuthMiddleware(log, &stubVerifier{err: errors.New("verification failed")})
			router := gin.New()
			reached := false
			router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
				reached = true
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if reached {
				t.Fatalf("handler ran despite rejected credentials")
			}
			if rec.Code != wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, wantStatus)
			}
			var body struct {
				Error struct {
					Message string `json:"message"`
					Code    string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error.Code != wantCode {
				t.Fatalf("code: got=%q want=%q", body.Error.Code, wantCode)
			}
			if body.Error.Message == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc", ""},
		{"bare bearer", "Bearer ", ""},
		{"token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case-insensitive scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"surrounding whitespace", "Bearer   abc.def.ghi  ", "abc.def.ghi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if got := extractBearerToken(c); got != tc.want {
				t.Fatalf("got=%q want=%q", got, tc.want)
			}
		})
	}
}
