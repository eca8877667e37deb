package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"brewpair/entity"
	"brewpair/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxOrderNotes = 240

var orderTypes = map[string]bool{"dine_in": true, "takeaway": true}

// Selection is the cart state carried in query strings between pages.
type Selection struct {
	CoffeeID  string `form:"coffee" json:"coffeeId"`
	PastryID  string `form:"pastry" json:"pastryId"`
	PairingID string `form:"pairing" json:"pairingId"`
}

func (s Selection) Complete() bool {
	return s.CoffeeID != "" && s.PastryID != "" && s.PairingID != ""
}

func (s Selection) Query() string {
	q := url.Values{}
	if s.CoffeeID != "" {
		q.Set("coffee", s.CoffeeID)
	}
	if s.PastryID != "" {
		q.Set("pastry", s.PastryID)
	}
	if s.PairingID != "" {
		q.Set("pairing", s.PairingID)
	}
	return q.Encode()
}

type Cart struct {
	Shop    *entity.Shop        `json:"shop"`
	Coffee  *entity.Coffee      `json:"coffee,omitempty"`
	Pastry  *entity.Pastry      `json:"pastry,omitempty"`
	Pairing *entity.PairingRule `json:"pairing,omitempty"`
	Total   decimal.Decimal     `json:"-"`
}

func (c *Cart) selection() Selection {
	var sel Selection
	if c.Coffee != nil {
		sel.CoffeeID = c.Coffee.ID
	}
	if c.Pastry != nil {
		sel.PastryID = c.Pastry.ID
	}
	if c.Pairing != nil {
		sel.PairingID = c.Pairing.ID
	}
	return sel
}

type CheckoutInput struct {
	Selection
	Name        string `json:"name" binding:"required"`
	TableNumber string `json:"tableNumber"`
	OrderType   string `json:"orderType"`
	Notes       string `json:"notes"`
}

type Order struct {
	Reference  string `json:"reference"`
	Total      string `json:"total"`
	SuccessURL string `json:"successUrl"`
	Cart       *Cart  `json:"cart"`
}

// Cart resolves the selection and records add_to_cart once all three ids are known.
func (s *JourneyService) Cart(ctx context.Context, v utils.Visitor, slug string, sel Selection) (*Cart, error) {
	cart, err := s.resolve(ctx, slug, sel)
	if err != nil {
		return nil, err
	}
	if sel.Complete() {
		s.tracker.Record(v, cart.Shop.ID, entity.EventAddToCart, EventRefs{
			CoffeeID:      sel.CoffeeID,
			PastryID:      sel.PastryID,
			PairingRuleID: sel.PairingID,
			Metadata:      map[string]any{"total": cart.Total.StringFixed(2)},
		})
	}
	return cart, nil
}

// CheckoutSummary is the order review; it records nothing.
func (s *JourneyService) CheckoutSummary(ctx context.Context, slug string, sel Selection) (*Cart, error) {
	if sel.CoffeeID == "" || sel.PastryID == "" {
		return nil, invalid("coffee and pastry are required")
	}
	return s.resolve(ctx, slug, sel)
}

// Checkout simulates placing the order. No payment is taken; the only
// side effect is a single checkout event.
func (s *JourneyService) Checkout(ctx context.Context, v utils.Visitor, slug string, in CheckoutInput) (*Order, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	orderType := strings.TrimSpace(in.OrderType)
	if orderType == "" {
		orderType = "dine_in"
	}
	if !orderTypes[orderType] {
		return nil, invalid("orderType must be dine_in or takeaway")
	}
	notes := strings.TrimSpace(in.Notes)
	if utf8.RuneCountInString(notes) > MaxOrderNotes {
		return nil, invalid("notes must be at most %d characters", MaxOrderNotes)
	}

	cart, err := s.CheckoutSummary(ctx, slug, in.Selection)
	if err != nil {
		return nil, err
	}

	ref := "BP-" + strings.ToUpper(uuid.NewString()[:8])
	total := cart.Total.StringFixed(2)
	sel := cart.selection()

	s.tracker.Record(v, cart.Shop.ID, entity.EventCheckout, EventRefs{
		CoffeeID:      sel.CoffeeID,
		PastryID:      sel.PastryID,
		PairingRuleID: sel.PairingID,
		Metadata: map[string]any{
			"order_ref":    ref,
			"name":         name,
			"table_number": strings.TrimSpace(in.TableNumber),
			"order_type":   orderType,
			"notes":        notes,
			"total":        total,
		},
	})

	return &Order{
		Reference:  ref,
		Total:      total,
		SuccessURL: fmt.Sprintf("/shop/%s/checkout/success?ref=%s", cart.Shop.Slug, url.QueryEscape(ref)),
		Cart:       cart,
	}, nil
}

func (s *JourneyService) resolve(ctx context.Context, slug string, sel Selection) (*Cart, error) {
	shop, err := s.shop(ctx, slug)
	if err != nil {
		return nil, err
	}
	cart := &Cart{Shop: shop, Total: decimal.Zero}

	if sel.CoffeeID != "" {
		if cart.Coffee, err = s.coffees.FindInShop(ctx, shop.ID, sel.CoffeeID); err != nil {
			return nil, storeErr(err, "coffee")
		}
		cart.Total = cart.Total.Add(priceOf(cart.Coffee.Price))
	}
	if sel.PastryID != "" {
		if cart.Pastry, err = s.pastries.FindInShop(ctx, shop.ID, sel.PastryID); err != nil {
			return nil, storeErr(err, "pastry")
		}
		cart.Total = cart.Total.Add(priceOf(cart.Pastry.Price))
	}
	if sel.PairingID != "" {
		if cart.Pairing, err = s.repo.FindInShop(ctx, shop.ID, sel.PairingID); err != nil {
			return nil, storeErr(err, "pairing")
		}
		if (sel.CoffeeID != "" && cart.Pairing.CoffeeID != sel.CoffeeID) ||
			(sel.PastryID != "" && cart.Pairing.PastryID != sel.PastryID) {
			return nil, invalid("pairing does not match the selected items")
		}
	}
	return cart, nil
}

func priceOf(p decimal.NullDecimal) decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return p.Decimal
}
