package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, OPTIONS"
	// Accept-Language lets the web app ask for Malayalam replies.
	corsHeaders = "Content-Type, Accept-Language"
	corsMaxAge  = "600"
)

// corsMiddleware lets the farmer web app call the API from its own origin.
// Requests from an origin outside the allow list get no CORS headers, so the
// browser blocks them; preflights from such origins are rejected outright.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	wildcard := len(allowed) == 0
	origins := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			wildcard = true
			continue
		}
		origins[strings.ToLower(strings.TrimRight(origin, "/"))] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		preflight := c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != ""
		if origin == "" {
			c.Next()
			return
		}

		headers := c.Writer.Header()
		headers.Add("Vary", "Origin")
		_, listed := origins[strings.ToLower(origin)]
		switch {
		case wildcard:
			headers.Set("Access-Control-Allow-Origin", "*")
		case listed:
			headers.Set("Access-Control-Allow-Origin", origin)
		case preflight:
			c.AbortWithStatus(http.StatusForbidden)
			return
		default:
			c.Next()
			return
		}

		if preflight {
			headers.Set("Access-Control-Allow-Methods", corsMethods)
			headers.Set("Access-Control-Allow-Headers", corsHeaders)
			headers.Set("Access-Control-Max-Age", corsMaxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
