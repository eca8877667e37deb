package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyticsEvent is append-only. Weak refs are nulled when the target row is deleted.
type AnalyticsEvent struct {
	ID            string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	ShopID        string            `gorm:"type:varchar(36);index;not null" json:"shopId"`
	SessionID     string            `gorm:"type:varchar(255);index;not null" json:"sessionId"`
	UserID        *string           `gorm:"type:varchar(36);index" json:"userId"`
	EventType     EventKind         `gorm:"type:varchar(50);index;not null" json:"eventType"`
	CoffeeID      *string           `gorm:"type:varchar(36)" json:"coffeeId"`
	PastryID      *string           `gorm:"type:varchar(36)" json:"pastryId"`
	PairingRuleID *string           `gorm:"type:varchar(36)" json:"pairingRuleId"`
	Metadata      datatypes.JSONMap `json:"metadata"`
	CreatedAt     time.Time         `gorm:"index" json:"createdAt"`

	User        *User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Coffee      *Coffee      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Pastry      *Pastry      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	PairingRule *PairingRule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
