package repository

import (
	"context"

	"gorm.io/gorm"
)

// updateByID and deleteByID report gorm.ErrRecordNotFound when nothing matched,
// so callers can tell a missing row from a no-op.
func updateByID(ctx context.Context, db *gorm.DB, model any, id string, fields map[string]any) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
