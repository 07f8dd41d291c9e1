package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/RumenDamyanov/go-seo/app/domain/auth"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/responses"
	"github.com/RumenDamyanov/go-seo/config"
)

// AdminAuthMiddleware protects the admin routes with a bearer token signed
// by the configured admin secret. When no secret is configured the admin
// API is treated as disabled rather than open.
func AdminAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.Server.AdminSecret
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "0e4742ee-6b61-4c9e-8663-89f8674e6449",
				Error: "admin API is not configured",
			})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "72a74ede-d8ec-406a-8101-461196e85005",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "ddd2d5a5-caac-428c-ada0-a9b4233a69fc",
			})
			return
		}

		tokenString := parts[1]
		token, err := jwt.ParseWithClaims(tokenString, &auth.AdminClaim{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "083e820f-452b-44ef-8dad-88f44782e6e9",
			})
			return
		}

		claims, ok := token.Claims.(*auth.AdminClaim)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "6cba94df-08a6-4ed4-93a9-26602fb7eba3",
			})
			return
		}

		c.Set(auth.ContextAdminClaim, claims)
		c.Next()
	}
}
