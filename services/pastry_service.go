package services

import (
	"context"
	"strings"

	"brewpair/entity"
	"brewpair/repository"

	"github.com/shopspring/decimal"
)

type PastryInput struct {
	ShopID        string           `json:"shopId"`
	Name          string           `json:"name" binding:"required"`
	Notes         string           `json:"notes"`
	FlavorProfile string           `json:"flavorProfile"`
	Image         string           `json:"image"`
	Price         *decimal.Decimal `json:"price"`
	Active        *bool            `json:"active"`
}

type PastryService struct {
	pastries *repository.PastryRepository
	shops    *repository.ShopRepository
}

func NewPastryService(pastries *repository.PastryRepository, shops *repository.ShopRepository) *PastryService {
	return &PastryService{pastries: pastries, shops: shops}
}

func (s *PastryService) List(ctx context.Context, shopID string) ([]entity.Pastry, error) {
	return s.pastries.FindByShop(ctx, shopID, false)
}

func (s *PastryService) Get(ctx context.Context, id string) (*entity.Pastry, error) {
	p, err := s.pastries.FindByID(ctx, id)
	return p, storeErr(err, "pastry")
}

func (s *PastryService) Create(ctx context.Context, in PastryInput) (*entity.Pastry, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	p := &entity.Pastry{
		ShopID:        in.ShopID,
		Name:          strings.TrimSpace(in.Name),
		Notes:         strings.TrimSpace(in.Notes),
		FlavorProfile: strings.TrimSpace(in.FlavorProfile),
		Image:         strings.TrimSpace(in.Image),
		Price:         nullPrice(in.Price),
		Active:        activeOrDefault(in.Active),
	}
	if err := s.pastries.Create(ctx, p); err != nil {
		return nil, storeErr(err, "pastry")
	}
	return p, nil
}

func (s *PastryService) Update(ctx context.Context, id string, in PastryInput) (*entity.Pastry, error) {
	cur, err := s.pastries.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "pastry")
	}
	in.ShopID = cur.ShopID
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	err = s.pastries.Update(ctx, id, map[string]any{
		"name":           strings.TrimSpace(in.Name),
		"notes":          strings.TrimSpace(in.Notes),
		"flavor_profile": strings.TrimSpace(in.FlavorProfile),
		"image":          strings.TrimSpace(in.Image),
		"price":          nullPrice(in.Price),
		"active":         activeOrDefault(in.Active),
	})
	if err != nil {
		return nil, storeErr(err, "pastry")
	}
	return s.Get(ctx, id)
}

func (s *PastryService) Delete(ctx context.Context, id string) error {
	return storeErr(s.pastries.Delete(ctx, id), "pastry")
}

func (s *PastryService) validate(ctx context.Context, in PastryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if err := validPrice(in.Price); err != nil {
		return err
	}
	return shopExists(ctx, s.shops, in.ShopID)
}
