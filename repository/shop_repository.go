// repository/shop_repository.go
package repository

import (
	"context"

	"brewpair/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopRepository struct {
	DB *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{DB: db}
}

func (r *ShopRepository) FindAll(ctx context.Context) ([]entity.Shop, error) {
	var shops []entity.Shop
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&shops).Error
	return shops, err
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*entity.Shop, error) {
	var shop entity.Shop
	if err := r.DB.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) FindBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	var shop entity.Shop
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// FindByQRCode looks a shop up by its unique QR token.
func (r *ShopRepository) FindByQRCode(ctx context.Context, code string) (*entity.Shop, error) {
	var shop entity.Shop
	if err := r.DB.WithContext(ctx).Where("qr_code = ?", code).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(shop).Error
}

func (r *ShopRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return updateByID(ctx, r.DB, &entity.Shop{}, id, fields)
}

// Delete removes the shop; storage cascades to its menu, pairings and events.
func (r *ShopRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, &entity.Shop{}, id)
}
