package services

import (
	"context"
	"testing"

	"brewpair/entity"
	"brewpair/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 0.0, Rate(5, 0))
	assert.Equal(t, 33.3, Rate(1, 3))
	assert.Equal(t, 66.7, Rate(2, 3))
	assert.Equal(t, 100.0, Rate(4, 4))
	assert.Equal(t, 12.5, Rate(1, 8))
}

func TestDashboard(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	v := visitor("s-dash")
	for _, k := range []entity.EventKind{
		entity.EventScan, entity.EventScan, entity.EventScan,
		entity.EventPairingView, entity.EventPairingView, entity.EventPairingView,
		entity.EventPairingAccept, entity.EventCheckout,
	} {
		_, err := env.tracker.RecordNow(ctx, v, env.shop.ID, k, EventRefs{})
		require.NoError(t, err)
	}

	d, err := env.stats.Dashboard(ctx, env.shop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.Counts[entity.EventScan])
	assert.Equal(t, int64(0), d.Counts[entity.EventAddToCart])
	assert.Equal(t, 33.3, d.PairingAcceptRate)
	assert.Equal(t, 33.3, d.ConversionRate)
	assert.Equal(t, int64(1), d.UniqueSessions)
	assert.Len(t, d.Recent, 8)

	empty, err := env.stats.Dashboard(ctx, "no-such-shop")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.ConversionRate)
	assert.Empty(t, empty.Recent)
}

func TestTrackValidatesKindAndShop(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	err := env.stats.Track(ctx, visitor("s-t"), TrackInput{ShopSlug: env.shop.Slug, EventType: "purchase"})
	assert.ErrorIs(t, err, ErrValidation)
	err = env.stats.Track(ctx, visitor("s-t"), TrackInput{EventType: "coffee_select"})
	assert.ErrorIs(t, err, ErrValidation)
	err = env.stats.Track(ctx, visitor("s-t"), TrackInput{ShopSlug: "nope", EventType: "coffee_select"})
	assert.ErrorIs(t, err, ErrNotFound)
	// scans only arrive through the landing redirect or the deduplicating backup
	err = env.stats.Track(ctx, visitor("s-t"), TrackInput{ShopSlug: env.shop.Slug, EventType: "scan"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.stats.Track(ctx, visitor("s-t"), TrackInput{
		ShopSlug: env.shop.Slug, EventType: "add_to_cart", Metadata: map[string]any{"from": "widget"},
	}))
	env.tracker.Close()
	events, err := env.stats.Session(ctx, "s-t")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "client", events[0].Metadata["source"])
	assert.Equal(t, "widget", events[0].Metadata["from"])
}

func TestOrdersAndDiagnostics(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	user, err := env.auth.SignUp(ctx, SignUpInput{Email: "sam@example.com", Password: "secret1"})
	require.NoError(t, err)

	espresso := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	croissant := testutil.Pastry(t, env.db, env.shop.ID, "Chocolate Croissant")
	v := visitor("s-orders")
	v.UserID = user.ID
	order, err := env.journey.Checkout(ctx, v, env.shop.Slug, CheckoutInput{
		Selection:   Selection{CoffeeID: espresso.ID, PastryID: croissant.ID},
		Name:        "Sam",
		TableNumber: "12",
		OrderType:   "takeaway",
	})
	require.NoError(t, err)
	env.tracker.Close()

	// later price changes do not rewrite history
	require.NoError(t, env.db.Model(espresso).Update("price", "9.50").Error)

	orders, err := env.stats.Orders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "8.00", orders[0].Total)
	assert.Equal(t, order.Reference, orders[0].Reference)
	assert.Equal(t, "12", orders[0].TableNumber)
	assert.Equal(t, "takeaway", orders[0].OrderType)
	assert.Equal(t, "Gloria Jeans", orders[0].ShopName)
	assert.Equal(t, "Espresso", orders[0].Coffee)

	d := env.stats.Diagnostics(ctx)
	assert.Equal(t, "ok", d.Database)
	assert.Equal(t, int64(1), d.EventCount)
	assert.Len(t, d.Recent, 1)
}

func TestSessionReturnsEveryEventWithRefs(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	coffee := testutil.Coffee(t, env.db, env.shop.ID, "Espresso")
	pastry := testutil.Pastry(t, env.db, env.shop.ID, "Chocolate Croissant")
	rule := testutil.Pairing(t, env.db, coffee.ID, pastry.ID)

	v := visitor("s-journey")
	journey := []struct {
		kind entity.EventKind
		refs EventRefs
	}{
		{entity.EventCoffeeSelect, EventRefs{CoffeeID: coffee.ID}},
		{entity.EventPairingView, EventRefs{CoffeeID: coffee.ID, PastryID: pastry.ID, PairingRuleID: rule.ID}},
		{entity.EventPairingAccept, EventRefs{CoffeeID: coffee.ID, PastryID: pastry.ID, PairingRuleID: rule.ID}},
		{entity.EventCheckout, EventRefs{CoffeeID: coffee.ID, PastryID: pastry.ID, Metadata: map[string]any{"total": "8.00"}}},
	}
	for _, step := range journey {
		_, err := env.tracker.RecordNow(ctx, v, env.shop.ID, step.kind, step.refs)
		require.NoError(t, err)
	}
	_, err := env.tracker.RecordNow(ctx, visitor("s-other"), env.shop.ID, entity.EventCoffeeSelect, EventRefs{})
	require.NoError(t, err)

	events, err := env.stats.Session(ctx, "s-journey")
	require.NoError(t, err)
	require.Len(t, events, len(journey))

	byKind := map[entity.EventKind]entity.AnalyticsEvent{}
	for _, ev := range events {
		assert.Equal(t, "s-journey", ev.SessionID)
		assert.Equal(t, env.shop.ID, ev.ShopID)
		byKind[ev.EventType] = ev
	}
	for _, step := range journey {
		ev, ok := byKind[step.kind]
		require.True(t, ok, step.kind)
		require.NotNil(t, ev.CoffeeID)
		assert.Equal(t, step.refs.CoffeeID, *ev.CoffeeID)
		if step.refs.PairingRuleID != "" {
			require.NotNil(t, ev.PairingRuleID)
			assert.Equal(t, rule.ID, *ev.PairingRuleID)
		}
	}
	assert.Equal(t, "8.00", byKind[entity.EventCheckout].Metadata["total"])

	empty, err := env.stats.Session(ctx, "never-seen")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = env.stats.Session(ctx, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}
