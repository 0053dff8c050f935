package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/response"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/auth"
	"github.com/zordhalo/lontario-YC-sub000/pkg/security"
)

var errNoSecret = errors.New("HS256 token received but SUPABASE_JWT_SECRET is not configured")

// AuthMiddleware verifies the Supabase access token. HS256 tokens are checked
// against the project secret, RS256/ES256 against the project JWKS.
func AuthMiddleware(jwks *auth.Provider, secret string, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetString(string(domain.KeyRequestID))

		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			secLog.LogAuthFailure(c.Request.Context(), security.EventTokenMissing, c.ClientIP(), reqID, c.FullPath(), "no bearer token")
			response.ErrorKind(c, http.StatusUnauthorized, "unauthorized", "Authorization header required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if secret == "" {
					return nil, errNoSecret
				}
				return []byte(secret), nil
			}
			if jwks == nil {
				return nil, errors.New("asymmetric token received but JWKS is not configured")
			}
			return jwks.KeyFunc(token)
		}, jwt.WithValidMethods([]string{"HS256", "RS256", "ES256"}), jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			reason := "invalid token"
			if err != nil {
				reason = err.Error()
			}
			secLog.LogAuthFailure(c.Request.Context(), security.EventTokenInvalid, c.ClientIP(), reqID, c.FullPath(), reason)
			response.ErrorKind(c, http.StatusUnauthorized, "unauthorized", "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.ErrorKind(c, http.StatusUnauthorized, "unauthorized", "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			secLog.LogAuthFailure(c.Request.Context(), security.EventTokenInvalid, c.ClientIP(), reqID, c.FullPath(), "missing sub claim")
			response.ErrorKind(c, http.StatusUnauthorized, "unauthorized", "Invalid claims", nil)
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		role := roleFromClaims(claims)

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), role)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, sub)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// roleFromClaims reads app_metadata.role. The top-level "role" claim is
// Supabase's Postgres role ("authenticated") and is ignored.
func roleFromClaims(claims jwt.MapClaims) string {
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if role, ok := meta["role"].(string); ok && role != "" {
			return role
		}
	}
	return domain.RoleRecruiter
}

// RequireRole aborts with 403 unless the caller has one of roles.
func RequireRole(secLog *security.SecurityLogger, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		if !allowed[role] {
			secLog.LogForbidden(c.Request.Context(),
				c.GetString(string(domain.KeyUserID)), role, c.ClientIP(),
				c.GetString(string(domain.KeyRequestID)), c.FullPath())
			response.ErrorKind(c, http.StatusForbidden, "forbidden", "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
