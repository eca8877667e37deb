package middlewares

import (
	"net/http"
	"strings"

	"brewpair/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("middlewares")

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "sid"

	sessionMaxAge = 365 * 24 * 60 * 60
	maxSessionLen = 255
)

// Session resolves the visitor's session id once per request: header,
// then cookie, else a new id stored in a one-year cookie.
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			if v, err := c.Cookie(SessionCookie); err == nil {
				id = strings.TrimSpace(v)
			}
		}
		if id == "" || len(id) > maxSessionLen {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", secure, true)
		}
		utils.SetSessionID(c, id)
		c.Next()
	}
}
