package entity

import (
	"github.com/shopspring/decimal"
)

type Pastry struct {
	Model
	ShopID        string              `gorm:"type:varchar(36);index;not null" json:"shopId"`
	Name          string              `gorm:"type:varchar(255);not null" json:"name"`
	Notes         string              `gorm:"type:text" json:"notes"`
	FlavorProfile string              `gorm:"type:text" json:"flavorProfile"`
	Image         string              `gorm:"type:varchar(500)" json:"image"`
	Price         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price"`
	Active        bool                `gorm:"not null" json:"active"`
}
