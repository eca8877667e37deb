package services

import (
	"testing"
	"time"

	"brewpair/configs"
	"brewpair/entity"
	"brewpair/internal/testutil"
	"brewpair/repository"
	"brewpair/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	shop     *entity.Shop
	tracker  *Tracker
	shops    *ShopService
	coffees  *CoffeeService
	pastries *PastryService
	pairings *PairingService
	scans    *ScanService
	journey  *JourneyService
	stats    *AnalyticsService
	auth     *AuthService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, shop := testutil.NewDemoDB(t)

	shopRepo := repository.NewShopRepository(db)
	coffeeRepo := repository.NewCoffeeRepository(db)
	pastryRepo := repository.NewPastryRepository(db)
	pairingRepo := repository.NewPairingRepository(db)
	eventRepo := repository.NewEventRepository(db)
	sx, err := configs.SqlxDB(db)
	require.NoError(t, err)

	tracker := NewTracker(eventRepo, 64, 2)
	t.Cleanup(tracker.Close)

	shops := NewShopService(shopRepo)
	pairings := NewPairingService(pairingRepo, coffeeRepo, pastryRepo)
	return &testEnv{
		db:       db,
		shop:     shop,
		tracker:  tracker,
		shops:    shops,
		coffees:  NewCoffeeService(coffeeRepo, shopRepo),
		pastries: NewPastryService(pastryRepo, shopRepo),
		pairings: pairings,
		scans:    NewScanService(shopRepo, eventRepo, tracker),
		journey:  NewJourneyService(shopRepo, coffeeRepo, pastryRepo, pairingRepo, pairings, tracker),
		stats:    NewAnalyticsService(repository.NewAnalyticsRepository(sx), eventRepo, shopRepo, tracker),
		auth:     NewAuthService(repository.NewUserRepository(db), shops, "test-secret", time.Hour, "http://localhost:8000"),
	}
}

func visitor(session string) utils.Visitor {
	return utils.Visitor{SessionID: session}
}
