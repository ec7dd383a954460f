package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/onelife-dev/one-backend/db"
	"github.com/onelife-dev/one-backend/internal/auth"
	"github.com/onelife-dev/one-backend/internal/models"
	"github.com/onelife-dev/one-backend/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
}

// tokenFromRequest looks for a Bearer token first and falls back to the
// session cookie the login handler sets.
func tokenFromRequest(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1], true
		}
		return "", false
	}

	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		return cookie, true
	}

	return "", false
}

func resolveUser(tokenString string) (AuthenticatedUser, error) {
	token, err := auth.VerifyJWT(tokenString)

	if err != nil || !token.Valid {
		return AuthenticatedUser{}, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return AuthenticatedUser{}, fmt.Errorf("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return AuthenticatedUser{}, fmt.Errorf("invalid user ID in token claims")
	}

	var user models.User

	if err := db.DB.Where("id = ?", uint(userIDFloat)).First(&user).Error; err != nil {
		return AuthenticatedUser{}, fmt.Errorf("user not found")
	}

	return AuthenticatedUser{
		ID:       user.ID,
		Username: user.Username,
		Nombre:   user.Nombre,
		Email:    user.Email,
	}, nil
}

// AuthMiddleware rejects requests without a verified identity.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := tokenFromRequest(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		user, err := resolveUser(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuth populates the caller identity when a valid token is present
// and lets the request through either way. Used by the handful of endpoints
// that stay reachable without a session (streak, policy-gated listings).
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenString, ok := tokenFromRequest(ctx); ok {
			if user, err := resolveUser(tokenString); err == nil {
				ctx.Set(types.ContextUserKey, user)
			}
		}
		ctx.Next()
	}
}
