package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samuelboada21/PruebaCVisual/internal/auth"
)

const ctxKeyIdentity = "identity"

// RequireAuth validates the bearer token and stores the identity on the
// context. Anything short of a fully valid token is a 401; there is no
// partial trust.
func RequireAuth(tokenCfg auth.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			unauthorized(c)
			return
		}

		id, err := auth.ParseToken(strings.TrimPrefix(h, "Bearer "), tokenCfg)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ctxKeyIdentity, id)
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ctxKeyIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      "authentication required",
		"request_id": GetRequestID(c),
	})
}
