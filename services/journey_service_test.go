package services

import (
	"context"
	"strings"
	"testing"

	"brewpair/configs"
	"brewpair/entity"
	"brewpair/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCoffeeRanksByScore(t *testing.T) {
	env := newEnv(t)
	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")

	rules := env.pairings.ForCoffee(context.Background(), env.shop.ID, espresso.ID)
	require.NotEmpty(t, rules)
	assert.Equal(t, "Chocolate Croissant", rules[0].Pastry.Name)
	assert.Equal(t, 95, rules[0].MatchScore)
	for i := 1; i < len(rules); i++ {
		assert.GreaterOrEqual(t, rules[i-1].MatchScore, rules[i].MatchScore)
	}
}

func TestForCoffeeUnknownCoffeeIsEmpty(t *testing.T) {
	env := newEnv(t)
	rules := env.pairings.ForCoffee(context.Background(), env.shop.ID, "nope")
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}

func TestForCoffeeStorageFailureIsEmpty(t *testing.T) {
	env := newEnv(t)
	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	env.tracker.Close()
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rules := env.pairings.ForCoffee(context.Background(), env.shop.ID, espresso.ID)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}

// Scan, pick Espresso, accept the top pairing, check out.
func TestGloriaJeansJourney(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	v := visitor("s-journey")

	scan, err := env.scans.Resolve(ctx, v, env.shop.QRCode)
	require.NoError(t, err)
	require.NotNil(t, scan.Event)
	assert.Equal(t, configs.DemoShopSlug, scan.Shop.Slug)

	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	page, err := env.journey.CoffeePage(ctx, v, scan.Shop.Slug, espresso.ID)
	require.NoError(t, err)
	require.NotEmpty(t, page.Pairings)
	top := page.Pairings[0]
	assert.Equal(t, "Chocolate Croissant", top.Pastry.Name)

	link, err := env.journey.AcceptPairing(ctx, v, scan.Shop.Slug, espresso.ID, top.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "/shop/"+scan.Shop.Slug+"/cart?"))
	assert.Contains(t, link, "pairing="+top.ID)

	sel := Selection{CoffeeID: espresso.ID, PastryID: top.PastryID, PairingID: top.ID}
	cart, err := env.journey.Cart(ctx, v, scan.Shop.Slug, sel)
	require.NoError(t, err)
	assert.Equal(t, "8.00", cart.Total.StringFixed(2))

	order, err := env.journey.Checkout(ctx, v, scan.Shop.Slug, CheckoutInput{
		Selection:   sel,
		Name:        "Sam",
		TableNumber: "4",
		Notes:       "extra hot",
	})
	require.NoError(t, err)
	assert.Equal(t, "8.00", order.Total)
	assert.Regexp(t, `^BP-[0-9A-F]{8}$`, order.Reference)

	env.tracker.Close()

	kinds := map[entity.EventKind]int{}
	var checkout entity.AnalyticsEvent
	for _, ev := range testutil.Events(t, env.db, "s-journey") {
		kinds[ev.EventType]++
		if ev.EventType == entity.EventCheckout {
			checkout = ev
		}
	}
	assert.Equal(t, 1, kinds[entity.EventCoffeeSelect])
	assert.Equal(t, len(page.Pairings), kinds[entity.EventPairingView])
	assert.Equal(t, 1, kinds[entity.EventPairingAccept])
	assert.Equal(t, 1, kinds[entity.EventAddToCart])
	assert.Equal(t, 1, kinds[entity.EventCheckout])
	assert.Equal(t, int64(1), testutil.CountEvents(t, env.db, entity.EventCheckout))

	assert.Equal(t, "8.00", checkout.Metadata["total"])
	assert.Equal(t, "dine_in", checkout.Metadata["order_type"])
	require.NotNil(t, checkout.PairingRuleID)
	assert.Equal(t, top.ID, *checkout.PairingRuleID)
}


func TestPairingViewMetadataCarriesRank(t *testing.T) {
	env := newEnv(t)
	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	page, err := env.journey.CoffeePage(context.Background(), visitor("s-rank"), env.shop.Slug, espresso.ID)
	require.NoError(t, err)
	env.tracker.Close()

	byRule := map[string]entity.AnalyticsEvent{}
	for _, ev := range testutil.Events(t, env.db, "s-rank") {
		if ev.EventType == entity.EventPairingView {
			byRule[*ev.PairingRuleID] = ev
		}
	}
	for i, p := range page.Pairings {
		ev, ok := byRule[p.ID]
		require.True(t, ok)
		// JSON numbers come back as float64
		assert.EqualValues(t, i+1, ev.Metadata["rank"])
		assert.EqualValues(t, p.MatchScore, ev.Metadata["match_score"])
	}
}

func TestCartWithoutAllIdsRecordsNothing(t *testing.T) {
	env := newEnv(t)
	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	cart, err := env.journey.Cart(context.Background(), visitor("s-partial"), env.shop.Slug, Selection{CoffeeID: espresso.ID})
	require.NoError(t, err)
	assert.Equal(t, "4.50", cart.Total.StringFixed(2))
	env.tracker.Close()
	assert.Zero(t, testutil.CountEvents(t, env.db, entity.EventAddToCart))
}

func TestCheckoutValidation(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	croissant := testutil.Pastry(t, env.db, env.shop.ID, "Chocolate Croissant")
	muffin := testutil.Pastry(t, env.db, env.shop.ID, "Blueberry Muffin")
	rule := testutil.Pairing(t, env.db, espresso.ID, croissant.ID)
	sel := Selection{CoffeeID: espresso.ID, PastryID: croissant.ID}

	cases := map[string]CheckoutInput{
		"no name":        {Selection: sel},
		"long notes":     {Selection: sel, Name: "Sam", Notes: strings.Repeat("x", MaxOrderNotes+1)},
		"bad order type": {Selection: sel, Name: "Sam", OrderType: "delivery"},
		"no pastry":      {Selection: Selection{CoffeeID: espresso.ID}, Name: "Sam"},
		"pairing mismatch": {
			Selection: Selection{CoffeeID: espresso.ID, PastryID: muffin.ID, PairingID: rule.ID},
			Name:      "Sam",
		},
	}
	for name, in := range cases {
		_, err := env.journey.Checkout(ctx, visitor("s-bad"), env.shop.Slug, in)
		assert.ErrorIs(t, err, ErrValidation, name)
	}

	_, err := env.journey.Checkout(ctx, visitor("s-bad"), env.shop.Slug, CheckoutInput{
		Selection: sel, Name: "Sam", Notes: strings.Repeat("é", MaxOrderNotes),
	})
	assert.NoError(t, err)

	_, err = env.journey.Checkout(ctx, visitor("s-bad"), "no-such-shop", CheckoutInput{Selection: sel, Name: "Sam"})
	assert.ErrorIs(t, err, ErrNotFound)

	env.tracker.Close()
	assert.Equal(t, int64(1), testutil.CountEvents(t, env.db, entity.EventCheckout))
}

func TestInactiveCoffeeIsHidden(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	latte := testutil.Coffee(t, env.db, env.shop.ID, "Latte")
	off := false
	_, err := env.coffees.Update(ctx, latte.ID, CoffeeInput{Name: "Latte", Active: &off})
	require.NoError(t, err)

	menu, err := env.journey.Menu(ctx, env.shop.Slug)
	require.NoError(t, err)
	for _, c := range menu.Coffees {
		assert.NotEqual(t, latte.ID, c.ID)
	}
	_, err = env.journey.CoffeePage(ctx, visitor("s"), env.shop.Slug, latte.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAcceptPairingOfAnotherCoffee(t *testing.T) {
	env := newEnv(t)
	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	latte := testutil.Coffee(t, env.db, env.shop.ID, "Latte")
	croissant := testutil.Pastry(t, env.db, env.shop.ID, "Chocolate Croissant")
	rule := testutil.Pairing(t, env.db, espresso.ID, croissant.ID)

	_, err := env.journey.AcceptPairing(context.Background(), visitor("s"), env.shop.Slug, latte.ID, rule.ID)
	assert.ErrorIs(t, err, ErrValidation)
}
