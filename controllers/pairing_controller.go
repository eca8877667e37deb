package controllers

import (
	"brewpair/pkg/resp"
	"brewpair/services"

	"github.com/gin-gonic/gin"
)

type PairingController struct {
	svc *services.PairingService
}

func NewPairingController(svc *services.PairingService) *PairingController {
	return &PairingController{svc: svc}
}

// GET /admin/pairings?shopId=&coffeeId=
func (pc *PairingController) List(c *gin.Context) {
	shopID := c.Query("shopId")
	if shopID == "" {
		resp.BadRequest(c, "shopId is required")
		return
	}
	rules, err := pc.svc.List(c.Request.Context(), shopID, c.Query("coffeeId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rules)
}

// POST /admin/pairings
func (pc *PairingController) Create(c *gin.Context) {
	var req services.PairingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rule, err := pc.svc.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rule)
}

// PUT /admin/pairings/:id
func (pc *PairingController) Update(c *gin.Context) {
	var req services.PairingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rule, err := pc.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rule)
}

// DELETE /admin/pairings/:id?confirm=true
func (pc *PairingController) Delete(c *gin.Context) {
	if !confirmed(c) {
		resp.BadRequest(c, "repeat with ?confirm=true to delete this pairing")
		return
	}
	if err := pc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": c.Param("id")})
}
