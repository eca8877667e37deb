package controllers

import (
	"brewpair/pkg/resp"
	"brewpair/services"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

// OrderController lists a customer's simulated orders, read back from checkout events.
type OrderController struct{ svc *services.AnalyticsService }

func NewOrderController(svc *services.AnalyticsService) *OrderController {
	return &OrderController{svc: svc}
}

// GET /orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	orders, err := oc.svc.Orders(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}
