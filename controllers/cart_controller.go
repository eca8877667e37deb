package controllers

import (
	"brewpair/pkg/resp"
	"brewpair/services"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

// CartController covers cart, checkout and the success page. The cart is
// not stored; it travels in the query string.
type CartController struct {
	shops   *services.ShopService
	journey *services.JourneyService
}

func NewCartController(shops *services.ShopService, journey *services.JourneyService) *CartController {
	return &CartController{shops: shops, journey: journey}
}

// GET /shop/:slug/cart?coffee=&pastry=&pairing=
func (cc *CartController) Cart(c *gin.Context) {
	var sel services.Selection
	if err := c.ShouldBindQuery(&sel); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := cc.journey.Cart(c.Request.Context(), utils.CurrentVisitor(c), c.Param("slug"), sel)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cartView(cart))
}

// GET /shop/:slug/checkout?coffee=&pastry=&pairing=
func (cc *CartController) CheckoutSummary(c *gin.Context) {
	var sel services.Selection
	if err := c.ShouldBindQuery(&sel); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := cc.journey.CheckoutSummary(c.Request.Context(), c.Param("slug"), sel)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cartView(cart))
}

// POST /shop/:slug/checkout
func (cc *CartController) Checkout(c *gin.Context) {
	var req services.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := cc.journey.Checkout(c.Request.Context(), utils.CurrentVisitor(c), c.Param("slug"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{
		"reference":  order.Reference,
		"total":      order.Total,
		"successUrl": order.SuccessURL,
		"cart":       cartView(order.Cart),
	})
}

// GET /shop/:slug/checkout/success?ref=
func (cc *CartController) Success(c *gin.Context) {
	shop, err := cc.shops.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"shop":      shop,
		"reference": c.Query("ref"),
		"message":   "Your order has been placed. Payment is handled at the counter.",
	})
}

func cartView(cart *services.Cart) gin.H {
	return gin.H{
		"shop":    cart.Shop,
		"coffee":  cart.Coffee,
		"pastry":  cart.Pastry,
		"pairing": cart.Pairing,
		"total":   cart.Total.StringFixed(2),
	}
}
