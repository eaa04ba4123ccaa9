package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-learnlab-backend/internal/delivery/http/response"
	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(tokens *auth.TokenManager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		// Fetch fresh user data so role changes and deactivations take effect
		// immediately rather than at token expiry.
		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "Account is deactivated", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)

		// Mirror the identity onto the request context so the usecase layer
		// can authorize without depending on gin.
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, user.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
