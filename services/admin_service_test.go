package services

import (
	"context"
	"testing"
	"time"

	"brewpair/entity"
	"brewpair/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestShopCreateIssuesQRToken(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	shop, err := env.shops.Create(ctx, ShopInput{Name: "Brew & Bake", Description: "corner store"})
	require.NoError(t, err)
	assert.Equal(t, "brew-and-bake", shop.Slug)
	assert.Regexp(t, `^shop-brew-and-bake-\d{13}$`, shop.QRCode)
	assert.Equal(t, "corner store", shop.Description())

	_, err = env.shops.Create(ctx, ShopInput{Name: "Other", Slug: "brew-and-bake"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.shops.Create(ctx, ShopInput{Name: "Bad", Slug: "Not A Slug"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.shops.Create(ctx, ShopInput{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShopUpdateKeepsOtherSettings(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	require.NoError(t, env.db.Model(&entity.Shop{}).Where("id = ?", env.shop.ID).
		Update("settings", datatypes.JSONMap{"description": "old", "theme": "dark"}).Error)

	shop, err := env.shops.Update(ctx, env.shop.ID, ShopInput{Name: "Gloria Jeans", Slug: env.shop.Slug, Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", shop.Description())
	assert.Equal(t, "dark", shop.Settings["theme"])
	assert.Equal(t, env.shop.QRCode, shop.QRCode)

	_, err = env.shops.Update(ctx, "missing", ShopInput{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShopUpdateWithoutSlugKeepsURL(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	before := env.shop.Slug

	shop, err := env.shops.Update(ctx, env.shop.ID, ShopInput{Name: "Gloria Jeans Coffees"})
	require.NoError(t, err)
	assert.Equal(t, before, shop.Slug)
	assert.Equal(t, "Gloria Jeans Coffees", shop.Name)

	shop, err = env.shops.Update(ctx, env.shop.ID, ShopInput{Name: "Gloria Jeans", Slug: "gloria-central"})
	require.NoError(t, err)
	assert.Equal(t, "gloria-central", shop.Slug)
}

func TestQRToken(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "shop-gloria-jeans-1700000000123", QRToken("gloria-jeans", at))
}

func TestCoffeeCRUD(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	price := decimal.RequireFromString("3.999")

	c, err := env.coffees.Create(ctx, CoffeeInput{
		ShopID:       env.shop.ID,
		Name:         "Flat White",
		TastingNotes: []string{" silky ", "", "cocoa"},
		Price:        &price,
	})
	require.NoError(t, err)
	assert.True(t, c.Active)
	assert.Equal(t, []string{"silky", "cocoa"}, []string(c.TastingNotes))
	assert.Equal(t, "4.00", c.Price.Decimal.StringFixed(2))

	off := false
	c, err = env.coffees.Update(ctx, c.ID, CoffeeInput{Name: "Flat White", Active: &off})
	require.NoError(t, err)
	assert.False(t, c.Active)
	assert.False(t, c.Price.Valid)
	assert.Equal(t, env.shop.ID, c.ShopID)

	neg := decimal.NewFromInt(-1)
	_, err = env.coffees.Create(ctx, CoffeeInput{ShopID: env.shop.ID, Name: "x", Price: &neg})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.coffees.Create(ctx, CoffeeInput{ShopID: "missing", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.coffees.Delete(ctx, c.ID))
	assert.ErrorIs(t, env.coffees.Delete(ctx, c.ID), ErrNotFound)
}

func TestPastryCRUD(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	p, err := env.pastries.Create(ctx, PastryInput{ShopID: env.shop.ID, Name: "Scone", FlavorProfile: "buttery"})
	require.NoError(t, err)

	p, err = env.pastries.Update(ctx, p.ID, PastryInput{Name: "Cheese Scone", FlavorProfile: "savory"})
	require.NoError(t, err)
	assert.Equal(t, "Cheese Scone", p.Name)
	assert.Equal(t, "savory", p.FlavorProfile)

	_, err = env.pastries.Update(ctx, p.ID, PastryInput{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := env.pastries.List(ctx, env.shop.ID)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestPairingValidation(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	americano := testutil.Coffee(t, env.db, env.shop.ID, "Americano")
	roll := testutil.Pastry(t, env.db, env.shop.ID, "Cinnamon Roll")
	croissant := testutil.Pastry(t, env.db, env.shop.ID, "Chocolate Croissant")

	other, err := env.shops.Create(ctx, ShopInput{Name: "Other Cafe"})
	require.NoError(t, err)
	foreign, err := env.pastries.Create(ctx, PastryInput{ShopID: other.ID, Name: "Foreign Tart"})
	require.NoError(t, err)

	base := PairingInput{ShopID: env.shop.ID, CoffeeID: americano.ID, PastryID: roll.ID, MatchScore: 70}

	for _, score := range []int{0, 101, -5} {
		in := base
		in.MatchScore = score
		_, err := env.pairings.Create(ctx, in)
		assert.ErrorIs(t, err, ErrValidation, "score %d", score)
	}

	in := base
	in.PastryID = foreign.ID
	_, err = env.pairings.Create(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	rule, err := env.pairings.Create(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, "Cinnamon Roll", rule.Pastry.Name)

	_, err = env.pairings.Create(ctx, base)
	assert.ErrorIs(t, err, ErrConflict)

	upd := base
	upd.PastryID = croissant.ID
	upd.MatchScore = 100
	rule, err = env.pairings.Update(ctx, rule.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, 100, rule.MatchScore)

	rules := env.pairings.ForCoffee(ctx, env.shop.ID, americano.ID)
	require.NotEmpty(t, rules)
	assert.Equal(t, rule.ID, rules[0].ID)
}
