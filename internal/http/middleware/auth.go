package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/verahealth/coach-backend/internal/http/response"
	"github.com/verahealth/coach-backend/internal/platform/ctxutil"
	"github.com/verahealth/coach-backend/internal/platform/logger"
)

// AuthMiddleware validates HS256 bearer tokens whose subject is the user id.
type AuthMiddleware struct {
	log    *logger.Logger
	secret []byte
}

func NewAuthMiddleware(log *logger.Logger, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		log:    log.With("middleware", "AuthMiddleware"),
		secret: []byte(secret),
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing or invalid token"))
			c.Abort()
			return
		}
		userID, err := am.parseSubject(tokenString)
		if err != nil {
			am.log.Warn("Token rejected", "error", err.Error())
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing or invalid token"))
			c.Abort()
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets the
// request through anonymously otherwise.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractBearerToken(c); tokenString != "" {
			if userID, err := am.parseSubject(tokenString); err == nil {
				ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

func (am *AuthMiddleware) parseSubject(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return am.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, fmt.Errorf("token missing subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject is not a user id")
	}
	return userID, nil
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
