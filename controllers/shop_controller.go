package controllers

import (
	"brewpair/pkg/resp"
	"brewpair/services"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

// ShopController serves the customer pages of a shop.
type ShopController struct {
	shops   *services.ShopService
	journey *services.JourneyService
}

func NewShopController(shops *services.ShopService, journey *services.JourneyService) *ShopController {
	return &ShopController{shops: shops, journey: journey}
}

// GET /shops
func (sc *ShopController) List(c *gin.Context) {
	shops, err := sc.shops.List(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, shops)
}

// GET /shop/:slug
func (sc *ShopController) Menu(c *gin.Context) {
	menu, err := sc.journey.Menu(c.Request.Context(), c.Param("slug"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"shop":        menu.Shop,
		"description": menu.Shop.Description(),
		"coffees":     menu.Coffees,
		"pastries":    menu.Pastries,
	})
}

// GET /shop/:slug/coffee/:coffeeId
func (sc *ShopController) Coffee(c *gin.Context) {
	page, err := sc.journey.CoffeePage(c.Request.Context(), utils.CurrentVisitor(c), c.Param("slug"), c.Param("coffeeId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// POST /shop/:slug/coffee/:coffeeId/pairings/:pairingId/accept
func (sc *ShopController) AcceptPairing(c *gin.Context) {
	link, err := sc.journey.AcceptPairing(c.Request.Context(), utils.CurrentVisitor(c),
		c.Param("slug"), c.Param("coffeeId"), c.Param("pairingId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cartUrl": link})
}
