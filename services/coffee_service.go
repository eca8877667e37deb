package services

import (
	"context"
	"strings"

	"brewpair/entity"
	"brewpair/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CoffeeInput struct {
	ShopID       string           `json:"shopId"`
	Name         string           `json:"name" binding:"required"`
	Roast        string           `json:"roast"`
	Origin       string           `json:"origin"`
	TastingNotes []string         `json:"tastingNotes"`
	Description  string           `json:"description"`
	Image        string           `json:"image"`
	Price        *decimal.Decimal `json:"price"`
	Active       *bool            `json:"active"`
}

type CoffeeService struct {
	coffees *repository.CoffeeRepository
	shops   *repository.ShopRepository
}

func NewCoffeeService(coffees *repository.CoffeeRepository, shops *repository.ShopRepository) *CoffeeService {
	return &CoffeeService{coffees: coffees, shops: shops}
}

func (s *CoffeeService) List(ctx context.Context, shopID string) ([]entity.Coffee, error) {
	return s.coffees.FindByShop(ctx, shopID, false)
}

func (s *CoffeeService) Get(ctx context.Context, id string) (*entity.Coffee, error) {
	c, err := s.coffees.FindByID(ctx, id)
	return c, storeErr(err, "coffee")
}

func (s *CoffeeService) Create(ctx context.Context, in CoffeeInput) (*entity.Coffee, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	c := &entity.Coffee{
		ShopID:       in.ShopID,
		Name:         strings.TrimSpace(in.Name),
		Roast:        strings.TrimSpace(in.Roast),
		Origin:       strings.TrimSpace(in.Origin),
		TastingNotes: cleanNotes(in.TastingNotes),
		Description:  strings.TrimSpace(in.Description),
		Image:        strings.TrimSpace(in.Image),
		Price:        nullPrice(in.Price),
		Active:       activeOrDefault(in.Active),
	}
	if err := s.coffees.Create(ctx, c); err != nil {
		return nil, storeErr(err, "coffee")
	}
	return c, nil
}

// Update rewrites every editable field. The owning shop never changes.
func (s *CoffeeService) Update(ctx context.Context, id string, in CoffeeInput) (*entity.Coffee, error) {
	cur, err := s.coffees.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "coffee")
	}
	in.ShopID = cur.ShopID
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	err = s.coffees.Update(ctx, id, map[string]any{
		"name":          strings.TrimSpace(in.Name),
		"roast":         strings.TrimSpace(in.Roast),
		"origin":        strings.TrimSpace(in.Origin),
		"tasting_notes": cleanNotes(in.TastingNotes),
		"description":   strings.TrimSpace(in.Description),
		"image":         strings.TrimSpace(in.Image),
		"price":         nullPrice(in.Price),
		"active":        activeOrDefault(in.Active),
	})
	if err != nil {
		return nil, storeErr(err, "coffee")
	}
	return s.Get(ctx, id)
}

func (s *CoffeeService) Delete(ctx context.Context, id string) error {
	return storeErr(s.coffees.Delete(ctx, id), "coffee")
}

func (s *CoffeeService) validate(ctx context.Context, in CoffeeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if err := validPrice(in.Price); err != nil {
		return err
	}
	return shopExists(ctx, s.shops, in.ShopID)
}

func shopExists(ctx context.Context, shops *repository.ShopRepository, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("shopId is required")
	}
	if _, err := shops.FindByID(ctx, id); err != nil {
		return storeErr(err, "shop")
	}
	return nil
}

func validPrice(p *decimal.Decimal) error {
	if p != nil && p.IsNegative() {
		return invalid("price must not be negative")
	}
	return nil
}

func nullPrice(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(p.Round(2))
}

func activeOrDefault(b *bool) bool {
	return b == nil || *b
}

func cleanNotes(notes []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	for _, n := range notes {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
