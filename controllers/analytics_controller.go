package controllers

import (
	"brewpair/pkg/resp"
	"brewpair/services"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{svc: svc}
}

// POST /api/track
func (ac *AnalyticsController) Track(c *gin.Context) {
	var req services.TrackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ac.svc.Track(c.Request.Context(), utils.CurrentVisitor(c), req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Accepted(c, gin.H{"queued": true, "sessionId": utils.CurrentSessionID(c)})
}

// GET /api/test-analytics
func (ac *AnalyticsController) Diagnostics(c *gin.Context) {
	resp.OK(c, ac.svc.Diagnostics(c.Request.Context()))
}

// GET /admin/analytics?shopId=
func (ac *AnalyticsController) Dashboard(c *gin.Context) {
	d, err := ac.svc.Dashboard(c.Request.Context(), c.Query("shopId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /admin/analytics/sessions/:sessionId
func (ac *AnalyticsController) Session(c *gin.Context) {
	events, err := ac.svc.Session(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, events)
}
