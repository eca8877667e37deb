package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"brewpair/entity"
	"brewpair/pkg/resp"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

const TokenCookie = "access_token"

// Identify attaches the signed-in user when the request carries a valid
// token. Anonymous and bad tokens pass through as anonymous.
func Identify(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := requestToken(c); tokenStr != "" {
			if claims, err := utils.ParseToken(tokenStr, secret); err == nil {
				utils.SetIdentity(c, claims)
			} else {
				log.Debugf("ignoring token: %v", err)
			}
		}
		c.Next()
	}
}

// RequireAuth answers 401 for anonymous API calls.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.CurrentUserID(c) == "" {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly sends anyone without the admin role to the sign-in page.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.CurrentRole(c).IsAdmin() {
			redirect(c, LoginRedirect(c.Request.URL.RequestURI()))
			return
		}
		c.Next()
	}
}

// CustomerOnly is the gate of customer pages: anonymous visitors sign in
// first, admins go back to their dashboard.
func CustomerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch utils.CurrentRole(c) {
		case entity.RoleCustomer:
			c.Next()
		case entity.RoleAdmin:
			redirect(c, "/admin")
		default:
			redirect(c, "/auth/login?redirect="+url.QueryEscape(c.Request.URL.RequestURI()))
		}
	}
}

func LoginRedirect(path string) string {
	q := url.Values{}
	q.Set("error", "unauthorized")
	q.Set("redirect", path)
	return "/auth/login?" + q.Encode()
}

// GET and HEAD get 302; anything else 303 so the browser follows with GET.
func redirect(c *gin.Context, location string) {
	code := http.StatusSeeOther
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		code = http.StatusFound
	}
	c.Redirect(code, location)
	c.Abort()
}

func requestToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(TokenCookie); err == nil {
		return v
	}
	return ""
}
