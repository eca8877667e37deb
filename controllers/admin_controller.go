package controllers

import (
	"brewpair/pkg/resp"
	"brewpair/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	shops *services.ShopService
	stats *services.AnalyticsService
}

func NewAdminController(shops *services.ShopService, stats *services.AnalyticsService) *AdminController {
	return &AdminController{shops: shops, stats: stats}
}

// GET /admin: shops plus the all-shop funnel
func (ac *AdminController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	shops, err := ac.shops.List(ctx)
	if err != nil {
		resp.Error(c, err)
		return
	}
	d, err := ac.stats.Dashboard(ctx, "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"shops":             shops,
		"counts":            d.Counts,
		"pairingAcceptRate": d.PairingAcceptRate,
		"conversionRate":    d.ConversionRate,
		"uniqueSessions":    d.UniqueSessions,
	})
}

// GET /admin/shops
func (ac *AdminController) ListShops(c *gin.Context) {
	shops, err := ac.shops.List(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, shops)
}

// POST /admin/shops
func (ac *AdminController) CreateShop(c *gin.Context) {
	var req services.ShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	shop, err := ac.shops.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, shop)
}

// PUT /admin/shops/:id
func (ac *AdminController) UpdateShop(c *gin.Context) {
	var req services.ShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	shop, err := ac.shops.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, shop)
}

// DELETE /admin/shops/:id?confirm=true removes the shop and everything it owns.
func (ac *AdminController) DeleteShop(c *gin.Context) {
	if !confirmed(c) {
		resp.BadRequest(c, "deleting a shop removes its menu, pairings and analytics; repeat with ?confirm=true")
		return
	}
	if err := ac.shops.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": c.Param("id")})
}
