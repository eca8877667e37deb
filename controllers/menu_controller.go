package controllers

import (
	"brewpair/pkg/resp"
	"brewpair/services"

	"github.com/gin-gonic/gin"
)

// MenuController is the admin CRUD for coffees and pastries.
type MenuController struct {
	coffees  *services.CoffeeService
	pastries *services.PastryService
}

func NewMenuController(coffees *services.CoffeeService, pastries *services.PastryService) *MenuController {
	return &MenuController{coffees: coffees, pastries: pastries}
}

// GET /admin/coffees?shopId=
func (mc *MenuController) ListCoffees(c *gin.Context) {
	shopID := c.Query("shopId")
	if shopID == "" {
		resp.BadRequest(c, "shopId is required")
		return
	}
	coffees, err := mc.coffees.List(c.Request.Context(), shopID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, coffees)
}

// POST /admin/coffees
func (mc *MenuController) CreateCoffee(c *gin.Context) {
	var req services.CoffeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	coffee, err := mc.coffees.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, coffee)
}

// PUT /admin/coffees/:id
func (mc *MenuController) UpdateCoffee(c *gin.Context) {
	var req services.CoffeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	coffee, err := mc.coffees.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, coffee)
}

// DELETE /admin/coffees/:id?confirm=true
func (mc *MenuController) DeleteCoffee(c *gin.Context) {
	if !confirmed(c) {
		resp.BadRequest(c, "deleting a coffee also removes its pairings; repeat with ?confirm=true")
		return
	}
	if err := mc.coffees.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": c.Param("id")})
}

// GET /admin/pastries?shopId=
func (mc *MenuController) ListPastries(c *gin.Context) {
	shopID := c.Query("shopId")
	if shopID == "" {
		resp.BadRequest(c, "shopId is required")
		return
	}
	pastries, err := mc.pastries.List(c.Request.Context(), shopID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, pastries)
}

// POST /admin/pastries
func (mc *MenuController) CreatePastry(c *gin.Context) {
	var req services.PastryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	pastry, err := mc.pastries.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, pastry)
}

// PUT /admin/pastries/:id
func (mc *MenuController) UpdatePastry(c *gin.Context) {
	var req services.PastryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	pastry, err := mc.pastries.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, pastry)
}

// DELETE /admin/pastries/:id?confirm=true
func (mc *MenuController) DeletePastry(c *gin.Context) {
	if !confirmed(c) {
		resp.BadRequest(c, "deleting a pastry also removes its pairings; repeat with ?confirm=true")
		return
	}
	if err := mc.pastries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": c.Param("id")})
}
