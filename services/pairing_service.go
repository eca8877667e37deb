package services

import (
	"context"
	"errors"
	"strings"

	"brewpair/entity"
	"brewpair/repository"

	"gorm.io/gorm"
)

type PairingInput struct {
	ShopID     string `json:"shopId"`
	CoffeeID   string `json:"coffeeId" binding:"required"`
	PastryID   string `json:"pastryId" binding:"required"`
	MatchScore int    `json:"matchScore"`
	Reasoning  string `json:"reasoning"`
	Active     *bool  `json:"active"`
}

type PairingService struct {
	pairings *repository.PairingRepository
	coffees  *repository.CoffeeRepository
	pastries *repository.PastryRepository
}

func NewPairingService(pairings *repository.PairingRepository, coffees *repository.CoffeeRepository, pastries *repository.PastryRepository) *PairingService {
	return &PairingService{pairings: pairings, coffees: coffees, pastries: pastries}
}

// ForCoffee ranks the active pairings of a coffee, best match first and
// ties broken by id. Storage failures are logged and read as "no pairings".
func (s *PairingService) ForCoffee(ctx context.Context, shopID, coffeeID string) []entity.PairingRule {
	rules, err := s.pairings.FindActiveForCoffee(ctx, shopID, coffeeID)
	if err != nil {
		log.Errorf("load pairings shop=%s coffee=%s: %v", shopID, coffeeID, err)
		return []entity.PairingRule{}
	}
	if rules == nil {
		rules = []entity.PairingRule{}
	}
	return rules
}

// List is the admin view: inactive rules included, optionally for one coffee.
func (s *PairingService) List(ctx context.Context, shopID, coffeeID string) ([]entity.PairingRule, error) {
	return s.pairings.FindByShop(ctx, shopID, coffeeID)
}

func (s *PairingService) Get(ctx context.Context, id string) (*entity.PairingRule, error) {
	r, err := s.pairings.FindByID(ctx, id)
	return r, storeErr(err, "pairing")
}

func (s *PairingService) Create(ctx context.Context, in PairingInput) (*entity.PairingRule, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	rule := &entity.PairingRule{
		ShopID:     in.ShopID,
		CoffeeID:   in.CoffeeID,
		PastryID:   in.PastryID,
		MatchScore: in.MatchScore,
		Reasoning:  strings.TrimSpace(in.Reasoning),
		Active:     activeOrDefault(in.Active),
	}
	if err := s.pairings.Create(ctx, rule); err != nil {
		return nil, storeErr(err, "pairing")
	}
	return s.Get(ctx, rule.ID)
}

func (s *PairingService) Update(ctx context.Context, id string, in PairingInput) (*entity.PairingRule, error) {
	cur, err := s.pairings.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "pairing")
	}
	in.ShopID = cur.ShopID
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	err = s.pairings.Update(ctx, id, map[string]any{
		"coffee_id":   in.CoffeeID,
		"pastry_id":   in.PastryID,
		"match_score": in.MatchScore,
		"reasoning":   strings.TrimSpace(in.Reasoning),
		"active":      activeOrDefault(in.Active),
	})
	if err != nil {
		return nil, storeErr(err, "pairing")
	}
	return s.Get(ctx, id)
}

func (s *PairingService) Delete(ctx context.Context, id string) error {
	return storeErr(s.pairings.Delete(ctx, id), "pairing")
}

// validate checks the score range and that both items belong to the rule's shop.
func (s *PairingService) validate(ctx context.Context, in PairingInput) error {
	if in.ShopID == "" || in.CoffeeID == "" || in.PastryID == "" {
		return invalid("shopId, coffeeId and pastryId are required")
	}
	if in.MatchScore < entity.MinMatchScore || in.MatchScore > entity.MaxMatchScore {
		return invalid("matchScore must be between %d and %d", entity.MinMatchScore, entity.MaxMatchScore)
	}
	if _, err := s.coffees.FindInShop(ctx, in.ShopID, in.CoffeeID); err != nil {
		return notInShop(err, "coffee")
	}
	if _, err := s.pastries.FindInShop(ctx, in.ShopID, in.PastryID); err != nil {
		return notInShop(err, "pastry")
	}
	return nil
}

func notInShop(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("%s does not belong to this shop", what)
	}
	return err
}
