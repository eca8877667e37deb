package controllers

import (
	"time"

	"brewpair/middlewares"
	"brewpair/pkg/resp"
	"brewpair/services"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type CompleteResetRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	svc          *services.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthController(svc *services.AuthService, ttl time.Duration, secure bool) *AuthController {
	return &AuthController{svc: svc, tokenTTL: ttl, secureCookie: secure}
}

// POST /auth/signup
func (a *AuthController) SignUp(c *gin.Context) {
	var req services.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, user)
}

// POST /auth/signup/admin
func (a *AuthController) SignUpAdmin(c *gin.Context) {
	var req services.AdminSignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, shop, err := a.svc.SignUpAdmin(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"user": user, "shop": shop})
}

// GET /auth/login is where guarded pages send anonymous visitors.
func (a *AuthController) LoginPage(c *gin.Context) {
	resp.OK(c, gin.H{
		"error":    c.Query("error"),
		"redirect": c.Query("redirect"),
		"login":    "POST /auth/login",
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	setCookie(c, middlewares.TokenCookie, token, int(a.tokenTTL.Seconds()), a.secureCookie)
	resp.OK(c, gin.H{"token": token, "user": user})
}

// POST /auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	setCookie(c, middlewares.TokenCookie, "", -1, a.secureCookie)
	resp.OK(c, gin.H{"signedOut": true})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.svc.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// POST /auth/reset-password always answers the same way.
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if _, err := a.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		log.Errorf("password reset request: %v", err)
	}
	resp.OK(c, gin.H{"message": "if the account exists, a reset link has been sent"})
}

// POST /auth/reset-password/complete
func (a *AuthController) CompleteReset(c *gin.Context) {
	var req CompleteResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := a.svc.CompletePasswordReset(c.Request.Context(), req.Token, req.Password); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"reset": true})
}
