package utils

import (
	"brewpair/entity"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "userId"
	ctxRole      = "role"
	ctxSessionID = "sessionId"
)

// Visitor is who is making the request: always a session, sometimes a user.
type Visitor struct {
	SessionID string
	UserID    string
	Role      entity.Role
}

func SetIdentity(c *gin.Context, claims *Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
}

func SetSessionID(c *gin.Context, id string) {
	c.Set(ctxSessionID, id)
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func CurrentRole(c *gin.Context) entity.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(entity.Role); ok {
			return r
		}
	}
	return ""
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

func CurrentVisitor(c *gin.Context) Visitor {
	return Visitor{
		SessionID: CurrentSessionID(c),
		UserID:    CurrentUserID(c),
		Role:      CurrentRole(c),
	}
}
