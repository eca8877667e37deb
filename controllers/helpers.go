package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("controllers")

// ScanCookie marks a browser whose QR scan is already stored.
const ScanCookie = "scan_session"

const scanCookieMaxAge = 30 * 60

func setCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

// confirmed guards destructive admin calls behind ?confirm=true.
func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}
