package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/verahealth/coach-backend/internal/platform/ctxutil"
	"github.com/verahealth/coach-backend/internal/platform/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func authTestRouter(t *testing.T, requireAuth bool) (*gin.Engine, *uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	am := NewAuthMiddleware(log, testSecret)

	var seenUser uuid.UUID
	r := gin.New()
	if requireAuth {
		r.Use(am.RequireAuth())
	} else {
		r.Use(am.OptionalAuth())
	}
	r.GET("/probe", func(c *gin.Context) {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			seenUser = rd.UserID
		}
		c.Status(http.StatusNoContent)
	})
	return r, &seenUser
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r, seenUser := authTestRouter(t, true)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID.String()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if *seenUser != userID {
		t.Fatalf("user id not propagated: got=%s want=%s", *seenUser, userID)
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r, _ := authTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	r, _ := authTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", uuid.New().String()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_NonUUIDSubject(t *testing.T) {
	r, _ := authTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "not-a-uuid"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	r, seenUser := authTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
	if *seenUser != uuid.Nil {
		t.Fatalf("anonymous request carried a user id: %s", *seenUser)
	}
}

func TestOptionalAuth_ValidTokenAttachesUser(t *testing.T) {
	r, seenUser := authTestRouter(t, false)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID.String()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d", rec.Code)
	}
	if *seenUser != userID {
		t.Fatalf("user id not attached: got=%s want=%s", *seenUser, userID)
	}
}
