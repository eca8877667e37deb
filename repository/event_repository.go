// repository/event_repository.go
package repository

import (
	"context"

	"brewpair/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository only inserts and reads, analytics events are never updated.
type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, ev *entity.AnalyticsEvent) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(ev).Error
}

// FindBySession returns a session's events, oldest first.
func (r *EventRepository) FindBySession(ctx context.Context, sessionID string) ([]entity.AnalyticsEvent, error) {
	events := []entity.AnalyticsEvent{}
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

// FindScan returns the scan recorded for a shop under a scan session id.
func (r *EventRepository) FindScan(ctx context.Context, shopID, sessionID string) (*entity.AnalyticsEvent, error) {
	var ev entity.AnalyticsEvent
	err := r.DB.WithContext(ctx).
		Where("shop_id = ? AND session_id = ? AND event_type = ?", shopID, sessionID, entity.EventScan).
		Order("created_at ASC").
		First(&ev).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Recent lists newest events first; empty shopID means all shops.
func (r *EventRepository) Recent(ctx context.Context, shopID string, limit int) ([]entity.AnalyticsEvent, error) {
	var events []entity.AnalyticsEvent
	q := r.DB.WithContext(ctx)
	if shopID != "" {
		q = q.Where("shop_id = ?", shopID)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.AnalyticsEvent{}).Count(&n).Error
	return n, err
}
