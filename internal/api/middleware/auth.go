package middleware

import (
	"fmt"
	"strings"

	"github.com/Marga-Ghale/ora-group-views/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	scopeKey  = "scope"
	userIDKey = "userID"
)

// ScopeMiddleware reads the requester's user id and visibility scope from a
// bearer token issued upstream. Requests without a usable token proceed as
// anonymous with the public scope.
func ScopeMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := types.ScopePublic
		userID := ""

		if tokenString, ok := bearerToken(c.GetHeader("Authorization")); ok {
			claims, err := parseClaims(tokenString, jwtSecret)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"path":  c.Request.URL.Path,
					"error": err,
				}).Debug("[Scope] Ignoring invalid token")
			} else {
				userID, _ = claims["sub"].(string)
				if s, ok := claims["scope"].(string); ok {
					scope = types.ParseScope(s)
				}
			}
		}

		c.Set(scopeKey, scope)
		if userID != "" {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// GetScope returns the requester's scope, public when none was set.
func GetScope(c *gin.Context) types.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if scope, ok := v.(types.Scope); ok {
			return scope
		}
	}
	return types.ScopePublic
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return ""
	}
	return userID.(string)
}
