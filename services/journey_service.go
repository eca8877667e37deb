package services

import (
	"context"
	"fmt"

	"brewpair/entity"
	"brewpair/repository"
	"brewpair/utils"
)

type Menu struct {
	Shop     *entity.Shop    `json:"shop"`
	Coffees  []entity.Coffee `json:"coffees"`
	Pastries []entity.Pastry `json:"pastries"`
}

type CoffeePage struct {
	Shop     *entity.Shop         `json:"shop"`
	Coffee   *entity.Coffee       `json:"coffee"`
	Pairings []entity.PairingRule `json:"pairings"`
}

// JourneyService serves the customer pages from menu to checkout and
// records one analytics event per step. Cart and checkout live in cart_service.go.
type JourneyService struct {
	shops    *repository.ShopRepository
	coffees  *repository.CoffeeRepository
	pastries *repository.PastryRepository
	pairings *PairingService
	repo     *repository.PairingRepository
	tracker  *Tracker
}

func NewJourneyService(
	shops *repository.ShopRepository,
	coffees *repository.CoffeeRepository,
	pastries *repository.PastryRepository,
	pairingRepo *repository.PairingRepository,
	pairings *PairingService,
	tracker *Tracker,
) *JourneyService {
	return &JourneyService{
		shops:    shops,
		coffees:  coffees,
		pastries: pastries,
		pairings: pairings,
		repo:     pairingRepo,
		tracker:  tracker,
	}
}

func (s *JourneyService) Menu(ctx context.Context, slug string) (*Menu, error) {
	shop, err := s.shop(ctx, slug)
	if err != nil {
		return nil, err
	}
	coffees, err := s.coffees.FindByShop(ctx, shop.ID, true)
	if err != nil {
		return nil, err
	}
	pastries, err := s.pastries.FindByShop(ctx, shop.ID, true)
	if err != nil {
		return nil, err
	}
	return &Menu{Shop: shop, Coffees: coffees, Pastries: pastries}, nil
}

// CoffeePage records coffee_select plus one pairing_view per pairing shown.
func (s *JourneyService) CoffeePage(ctx context.Context, v utils.Visitor, slug, coffeeID string) (*CoffeePage, error) {
	shop, err := s.shop(ctx, slug)
	if err != nil {
		return nil, err
	}
	coffee, err := s.coffees.FindInShop(ctx, shop.ID, coffeeID)
	if err != nil {
		return nil, storeErr(err, "coffee")
	}
	if !coffee.Active {
		return nil, fmt.Errorf("%w: coffee", ErrNotFound)
	}

	pairings := s.pairings.ForCoffee(ctx, shop.ID, coffee.ID)

	s.tracker.Record(v, shop.ID, entity.EventCoffeeSelect, EventRefs{
		CoffeeID: coffee.ID,
		Metadata: map[string]any{"coffee_name": coffee.Name, "pairings": len(pairings)},
	})
	for i, p := range pairings {
		s.tracker.Record(v, shop.ID, entity.EventPairingView, EventRefs{
			CoffeeID:      coffee.ID,
			PastryID:      p.PastryID,
			PairingRuleID: p.ID,
			Metadata:      map[string]any{"rank": i + 1, "match_score": p.MatchScore},
		})
	}

	return &CoffeePage{Shop: shop, Coffee: coffee, Pairings: pairings}, nil
}

// AcceptPairing records pairing_accept and returns the cart link.
func (s *JourneyService) AcceptPairing(ctx context.Context, v utils.Visitor, slug, coffeeID, pairingID string) (string, error) {
	shop, err := s.shop(ctx, slug)
	if err != nil {
		return "", err
	}
	rule, err := s.repo.FindInShop(ctx, shop.ID, pairingID)
	if err != nil {
		return "", storeErr(err, "pairing")
	}
	if rule.CoffeeID != coffeeID {
		return "", invalid("pairing does not belong to this coffee")
	}

	s.tracker.Record(v, shop.ID, entity.EventPairingAccept, EventRefs{
		CoffeeID:      rule.CoffeeID,
		PastryID:      rule.PastryID,
		PairingRuleID: rule.ID,
		Metadata:      map[string]any{"match_score": rule.MatchScore},
	})

	sel := Selection{CoffeeID: rule.CoffeeID, PastryID: rule.PastryID, PairingID: rule.ID}
	return fmt.Sprintf("/shop/%s/cart?%s", shop.Slug, sel.Query()), nil
}

func (s *JourneyService) shop(ctx context.Context, slug string) (*entity.Shop, error) {
	shop, err := s.shops.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeErr(err, "shop")
	}
	return shop, nil
}
