package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxSessionKey = "session_id"
	// HeaderToken carries the session token both ways.
	HeaderToken = "X-Session-Token"
)

// Middleware attaches a session id to every request. A valid token from
// the Authorization bearer or X-Session-Token header is reused; otherwise a
// new session is started. The effective token is always echoed back in
// X-Session-Token so clients can keep it.
func Middleware(tokens TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw != "" {
			if claims, err := tokens.Parse(raw); err == nil {
				c.Set(CtxSessionKey, claims.SessionID)
				c.Header(HeaderToken, raw)
				c.Next()
				return
			}
		}

		id, token, _, err := tokens.NewSession()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session failed"})
			return
		}
		c.Set(CtxSessionKey, id)
		c.Header(HeaderToken, token)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); len(h) > len("bearer ") && strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return strings.TrimSpace(c.GetHeader(HeaderToken))
}

// ID returns the session id set by Middleware, or "" outside of it.
func ID(c *gin.Context) string {
	return c.GetString(CtxSessionKey)
}
