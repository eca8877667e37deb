package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"brewpair/entity"
	"brewpair/repository"
	"brewpair/utils"

	"gorm.io/datatypes"
)

type ShopInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type ShopService struct {
	shops *repository.ShopRepository
}

func NewShopService(shops *repository.ShopRepository) *ShopService {
	return &ShopService{shops: shops}
}

func (s *ShopService) List(ctx context.Context) ([]entity.Shop, error) {
	return s.shops.FindAll(ctx)
}

func (s *ShopService) Get(ctx context.Context, id string) (*entity.Shop, error) {
	shop, err := s.shops.FindByID(ctx, id)
	return shop, storeErr(err, "shop")
}

func (s *ShopService) BySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	shop, err := s.shops.FindBySlug(ctx, slug)
	return shop, storeErr(err, "shop")
}

// Create inserts a shop and issues its QR token.
func (s *ShopService) Create(ctx context.Context, in ShopInput) (*entity.Shop, error) {
	name, slug, err := normalizeShop(in, "")
	if err != nil {
		return nil, err
	}
	shop := &entity.Shop{
		Name:     name,
		Slug:     slug,
		QRCode:   QRToken(slug, time.Now()),
		Settings: datatypes.JSONMap{"description": strings.TrimSpace(in.Description)},
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, storeErr(err, "shop")
	}
	return shop, nil
}

// CreateForOwner names the shop after the cafe and appends a random
// 6-digit suffix to the slug.
func (s *ShopService) CreateForOwner(ctx context.Context, cafeName string) (*entity.Shop, error) {
	base := utils.Slugify(cafeName)
	if base == "" {
		base = "cafe"
	}
	return s.Create(ctx, ShopInput{
		Name: cafeName,
		Slug: fmt.Sprintf("%s-%06d", base, rand.Intn(1000000)),
	})
}

// Update keeps unrelated settings keys and overwrites the description.
func (s *ShopService) Update(ctx context.Context, id string, in ShopInput) (*entity.Shop, error) {
	shop, err := s.shops.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "shop")
	}
	name, slug, err := normalizeShop(in, shop.Slug)
	if err != nil {
		return nil, err
	}

	settings := datatypes.JSONMap{}
	for k, v := range shop.Settings {
		settings[k] = v
	}
	settings["description"] = strings.TrimSpace(in.Description)

	err = s.shops.Update(ctx, id, map[string]any{
		"name":     name,
		"slug":     slug,
		"settings": settings,
	})
	if err != nil {
		return nil, storeErr(err, "shop")
	}
	return s.Get(ctx, id)
}

func (s *ShopService) Delete(ctx context.Context, id string) error {
	return storeErr(s.shops.Delete(ctx, id), "shop")
}

// QRToken is the value encoded in a shop's printed QR code.
func QRToken(slug string, at time.Time) string {
	return fmt.Sprintf("shop-%s-%d", slug, at.UnixMilli())
}

// normalizeShop falls back to current when no slug is given, or to the
// slugified name when current is empty too.
func normalizeShop(in ShopInput, current string) (name, slug string, err error) {
	name = strings.TrimSpace(in.Name)
	if name == "" {
		return "", "", invalid("name is required")
	}
	slug = strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = current
	}
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if !utils.ValidSlug(slug) {
		return "", "", invalid("slug %q must be lower-case letters, digits, dashes or underscores", slug)
	}
	return name, slug, nil
}
