package controllers

import (
	"net/http"

	"brewpair/pkg/resp"
	"brewpair/services"
	"brewpair/utils"

	"github.com/gin-gonic/gin"
)

type TrackScanRequest struct {
	QRCode string `json:"qrCode"`
}

type QRController struct {
	scans        *services.ScanService
	secureCookie bool
}

func NewQRController(scans *services.ScanService, secure bool) *QRController {
	return &QRController{scans: scans, secureCookie: secure}
}

// GET /qr/:token records the scan and sends the visitor to the shop menu.
func (qc *QRController) Scan(c *gin.Context) {
	res, err := qc.scans.Resolve(c.Request.Context(), utils.CurrentVisitor(c), c.Param("token"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if res.Event != nil {
		setCookie(c, ScanCookie, res.ScanSessionID, scanCookieMaxAge, qc.secureCookie)
	}
	c.Redirect(http.StatusFound, "/shop/"+res.Shop.Slug)
}

// POST /api/track-scan is the browser-side fallback for the scan event.
func (qc *QRController) TrackScan(c *gin.Context) {
	var req TrackScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "qrCode is required")
		return
	}
	marker, _ := c.Cookie(ScanCookie)

	res, err := qc.scans.TrackBackup(c.Request.Context(), utils.CurrentVisitor(c), req.QRCode, marker)
	if err != nil {
		resp.Error(c, err)
		return
	}
	setCookie(c, ScanCookie, res.ScanSessionID, scanCookieMaxAge, qc.secureCookie)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"eventId":      res.Event.ID,
		"shopSlug":     res.Shop.Slug,
		"sessionId":    res.ScanSessionID,
		"deduplicated": res.Deduplicated,
	})
}
