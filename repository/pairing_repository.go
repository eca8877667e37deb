// repository/pairing_repository.go
package repository

import (
	"context"

	"brewpair/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PairingRepository struct {
	DB *gorm.DB
}

func NewPairingRepository(db *gorm.DB) *PairingRepository {
	return &PairingRepository{DB: db}
}

// FindActiveForCoffee is the ranked pairing query: active rules only, best score first,
// ties broken by id so the order is stable. The pastry's own active flag is not checked.
func (r *PairingRepository) FindActiveForCoffee(ctx context.Context, shopID, coffeeID string) ([]entity.PairingRule, error) {
	var rules []entity.PairingRule
	err := r.DB.WithContext(ctx).
		Preload("Coffee").
		Preload("Pastry").
		Where("shop_id = ? AND coffee_id = ? AND active = ?", shopID, coffeeID, true).
		Order("match_score DESC").
		Order("id ASC").
		Find(&rules).Error
	return rules, err
}

// FindByShop is the admin listing; coffeeID narrows it when set.
func (r *PairingRepository) FindByShop(ctx context.Context, shopID, coffeeID string) ([]entity.PairingRule, error) {
	var rules []entity.PairingRule
	q := r.DB.WithContext(ctx).
		Preload("Coffee").
		Preload("Pastry").
		Where("shop_id = ?", shopID)
	if coffeeID != "" {
		q = q.Where("coffee_id = ?", coffeeID)
	}
	err := q.Order("match_score DESC").Order("id ASC").Find(&rules).Error
	return rules, err
}

func (r *PairingRepository) FindByID(ctx context.Context, id string) (*entity.PairingRule, error) {
	var rule entity.PairingRule
	if err := r.DB.WithContext(ctx).Preload("Coffee").Preload("Pastry").First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *PairingRepository) FindInShop(ctx context.Context, shopID, id string) (*entity.PairingRule, error) {
	var rule entity.PairingRule
	if err := r.DB.WithContext(ctx).Where("shop_id = ? AND id = ?", shopID, id).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *PairingRepository) Create(ctx context.Context, rule *entity.PairingRule) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(rule).Error
}

func (r *PairingRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return updateByID(ctx, r.DB, &entity.PairingRule{}, id, fields)
}

func (r *PairingRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, &entity.PairingRule{}, id)
}
