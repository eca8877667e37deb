// middlewares/ws_auth.go
package middlewares

import (
	"net/http"
	"strings"

	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware checks an admin JWT taken from the query or the header,
// since browsers cannot set headers on a websocket handshake.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing token"})
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}
		if !claims.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			return
		}

		utils.SetIdentity(c, claims)
		c.Next()
	}
}
