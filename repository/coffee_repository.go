// repository/coffee_repository.go
package repository

import (
	"context"

	"brewpair/entity"

	"gorm.io/gorm"
)

type CoffeeRepository struct {
	DB *gorm.DB
}

func NewCoffeeRepository(db *gorm.DB) *CoffeeRepository {
	return &CoffeeRepository{DB: db}
}

// FindByShop lists a shop's coffees by name; activeOnly is the customer menu view.
func (r *CoffeeRepository) FindByShop(ctx context.Context, shopID string, activeOnly bool) ([]entity.Coffee, error) {
	var coffees []entity.Coffee
	q := r.DB.WithContext(ctx).Where("shop_id = ?", shopID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("name ASC").Find(&coffees).Error
	return coffees, err
}

func (r *CoffeeRepository) FindByID(ctx context.Context, id string) (*entity.Coffee, error) {
	var coffee entity.Coffee
	if err := r.DB.WithContext(ctx).First(&coffee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coffee, nil
}

// FindInShop scopes the lookup so ids from another shop read as not found.
func (r *CoffeeRepository) FindInShop(ctx context.Context, shopID, id string) (*entity.Coffee, error) {
	var coffee entity.Coffee
	if err := r.DB.WithContext(ctx).Where("shop_id = ? AND id = ?", shopID, id).First(&coffee).Error; err != nil {
		return nil, err
	}
	return &coffee, nil
}

func (r *CoffeeRepository) Create(ctx context.Context, coffee *entity.Coffee) error {
	return r.DB.WithContext(ctx).Create(coffee).Error
}

func (r *CoffeeRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return updateByID(ctx, r.DB, &entity.Coffee{}, id, fields)
}

func (r *CoffeeRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, &entity.Coffee{}, id)
}
