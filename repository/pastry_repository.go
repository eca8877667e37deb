// repository/pastry_repository.go
package repository

import (
	"context"

	"brewpair/entity"

	"gorm.io/gorm"
)

type PastryRepository struct {
	DB *gorm.DB
}

func NewPastryRepository(db *gorm.DB) *PastryRepository {
	return &PastryRepository{DB: db}
}

func (r *PastryRepository) FindByShop(ctx context.Context, shopID string, activeOnly bool) ([]entity.Pastry, error) {
	var pastries []entity.Pastry
	q := r.DB.WithContext(ctx).Where("shop_id = ?", shopID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("name ASC").Find(&pastries).Error
	return pastries, err
}

func (r *PastryRepository) FindByID(ctx context.Context, id string) (*entity.Pastry, error) {
	var pastry entity.Pastry
	if err := r.DB.WithContext(ctx).First(&pastry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pastry, nil
}

func (r *PastryRepository) FindInShop(ctx context.Context, shopID, id string) (*entity.Pastry, error) {
	var pastry entity.Pastry
	if err := r.DB.WithContext(ctx).Where("shop_id = ? AND id = ?", shopID, id).First(&pastry).Error; err != nil {
		return nil, err
	}
	return &pastry, nil
}

func (r *PastryRepository) Create(ctx context.Context, pastry *entity.Pastry) error {
	return r.DB.WithContext(ctx).Create(pastry).Error
}

func (r *PastryRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return updateByID(ctx, r.DB, &entity.Pastry{}, id, fields)
}

func (r *PastryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, &entity.Pastry{}, id)
}
