package routes

import (
	"strings"

	"brewpair/configs"
	"brewpair/controllers"
	"brewpair/middlewares"
	"brewpair/repository"
	"brewpair/services"
	"brewpair/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires repositories, services and controllers onto r. The
// returned hub is already a tracker sink; the caller runs it.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, tracker *services.Tracker) (*ws.AnalyticsHub, error) {
	sx, err := configs.SqlxDB(db)
	if err != nil {
		return nil, err
	}

	// Repositories
	shopRepo := repository.NewShopRepository(db)
	coffeeRepo := repository.NewCoffeeRepository(db)
	pastryRepo := repository.NewPastryRepository(db)
	pairingRepo := repository.NewPairingRepository(db)
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewAnalyticsRepository(sx)

	// Services
	shopSvc := services.NewShopService(shopRepo)
	coffeeSvc := services.NewCoffeeService(coffeeRepo, shopRepo)
	pastrySvc := services.NewPastryService(pastryRepo, shopRepo)
	pairingSvc := services.NewPairingService(pairingRepo, coffeeRepo, pastryRepo)
	scanSvc := services.NewScanService(shopRepo, eventRepo, tracker)
	journeySvc := services.NewJourneyService(shopRepo, coffeeRepo, pastryRepo, pairingRepo, pairingSvc, tracker)
	statsSvc := services.NewAnalyticsService(statsRepo, eventRepo, shopRepo, tracker)
	authSvc := services.NewAuthService(userRepo, shopSvc, cfg.JWTSecret, cfg.JWTTTL, cfg.BaseURL)

	hub := ws.NewAnalyticsHub(shopSvc)
	tracker.AddSink(hub)

	// Controllers
	secure := strings.HasPrefix(cfg.BaseURL, "https://")
	authCtrl := controllers.NewAuthController(authSvc, cfg.JWTTTL, secure)
	shopCtrl := controllers.NewShopController(shopSvc, journeySvc)
	cartCtrl := controllers.NewCartController(shopSvc, journeySvc)
	qrCtrl := controllers.NewQRController(scanSvc, secure)
	statsCtrl := controllers.NewAnalyticsController(statsSvc)
	orderCtrl := controllers.NewOrderController(statsSvc)
	adminCtrl := controllers.NewAdminController(shopSvc, statsSvc)
	menuCtrl := controllers.NewMenuController(coffeeSvc, pastrySvc)
	pairingCtrl := controllers.NewPairingController(pairingSvc)

	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Live feed authenticates by query token, before the cookie-based stack.
	r.GET("/admin/analytics/live", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)

	app := r.Group("/", middlewares.Session(secure), middlewares.Identify(cfg.JWTSecret))

	// Auth (public)
	a := app.Group("/auth")
	{
		a.POST("/signup", authCtrl.SignUp)
		a.POST("/signup/admin", authCtrl.SignUpAdmin)
		a.GET("/login", authCtrl.LoginPage)
		a.POST("/login", authCtrl.Login)
		a.POST("/logout", authCtrl.Logout)
		a.POST("/reset-password", authCtrl.ResetPassword)
		a.POST("/reset-password/complete", authCtrl.CompleteReset)
		a.GET("/me", middlewares.RequireAuth(), authCtrl.Me)
	}

	// QR landing
	app.GET("/qr/:token", qrCtrl.Scan)

	// Customer journey
	app.GET("/shops", shopCtrl.List)
	s := app.Group("/shop/:slug")
	{
		s.GET("", shopCtrl.Menu)
		s.GET("/coffee/:coffeeId", shopCtrl.Coffee)
		s.POST("/coffee/:coffeeId/pairings/:pairingId/accept", shopCtrl.AcceptPairing)
		s.GET("/cart", cartCtrl.Cart)
		s.GET("/checkout", cartCtrl.CheckoutSummary)
		s.POST("/checkout", cartCtrl.Checkout)
		s.GET("/checkout/success", cartCtrl.Success)
	}
	app.GET("/orders", middlewares.CustomerOnly(), orderCtrl.ListForMe)

	// Browser-side tracking
	api := app.Group("/api")
	{
		api.POST("/track", statsCtrl.Track)
		api.POST("/track-scan", qrCtrl.TrackScan)
		api.GET("/test-analytics", statsCtrl.Diagnostics)
	}

	// Admin (admin only)
	ad := app.Group("/admin", middlewares.AdminOnly())
	{
		ad.GET("", adminCtrl.Dashboard)
		ad.GET("/analytics", statsCtrl.Dashboard)
		ad.GET("/analytics/sessions/:sessionId", statsCtrl.Session)

		ad.GET("/shops", adminCtrl.ListShops)
		ad.POST("/shops", adminCtrl.CreateShop)
		ad.PUT("/shops/:id", adminCtrl.UpdateShop)
		ad.DELETE("/shops/:id", adminCtrl.DeleteShop)

		ad.GET("/coffees", menuCtrl.ListCoffees)
		ad.POST("/coffees", menuCtrl.CreateCoffee)
		ad.PUT("/coffees/:id", menuCtrl.UpdateCoffee)
		ad.DELETE("/coffees/:id", menuCtrl.DeleteCoffee)

		ad.GET("/pastries", menuCtrl.ListPastries)
		ad.POST("/pastries", menuCtrl.CreatePastry)
		ad.PUT("/pastries/:id", menuCtrl.UpdatePastry)
		ad.DELETE("/pastries/:id", menuCtrl.DeletePastry)

		ad.GET("/pairings", pairingCtrl.List)
		ad.POST("/pairings", pairingCtrl.Create)
		ad.PUT("/pairings/:id", pairingCtrl.Update)
		ad.DELETE("/pairings/:id", pairingCtrl.Delete)
	}

	return hub, nil
}
