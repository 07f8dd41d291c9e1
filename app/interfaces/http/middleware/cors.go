package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RumenDamyanov/go-seo/config/environment_variables"
)

// CORS allows browser calls from the origins listed in ALLOWED_CORS_HOSTS.
// A single "*" entry opens the API to any origin, without credentials.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			switch matchOrigin(origin) {
			case corsAny:
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				setCORSHeaders(c)
			case corsExact:
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				c.Writer.Header().Set("Vary", "Origin")
				setCORSHeaders(c)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, X-Request-ID")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
	c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
}

type corsMatch int

const (
	corsDenied corsMatch = iota
	corsExact
	corsAny
)

func matchOrigin(origin string) corsMatch {
	for _, host := range environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS {
		if host == "*" {
			return corsAny
		}
		if host == origin {
			return corsExact
		}
	}
	return corsDenied
}
