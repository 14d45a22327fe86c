package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yururi-apps/schedule-coordination-backend/config"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auth"
)

// AuthMiddleware handles JWT authentication and sets up the request context
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, cfg, authSvc)
		if !ok {
			return // authenticate already aborted with 401
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid bearer token is present but
// never rejects the request. Invitee routes use it: an invitation token in
// the query string is an alternative credential handled downstream.
func OptionalAuth(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if user, ok := parseBearer(c, cfg, authSvc); ok {
				c.Set("user", user)
				c.Set("user_id", user.ID)
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, cfg *config.Config, authSvc auth.Service) (*auth.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
		return nil, false
	}

	user, ok := parseBearer(c, cfg, authSvc)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	return user, true
}

func parseBearer(c *gin.Context, cfg *config.Config, authSvc auth.Service) (*auth.User, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTAccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, false
	}

	user, err := authSvc.GetUserByID(userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// CurrentUser returns the authenticated user from the gin context, or nil
func CurrentUser(c *gin.Context) *auth.User {
	if v, exists := c.Get("user"); exists {
		if user, ok := v.(*auth.User); ok {
			return user
		}
	}
	return nil
}
