package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Coffee struct {
	Model
	ShopID       string                      `gorm:"type:varchar(36);index;not null" json:"shopId"`
	Name         string                      `gorm:"type:varchar(255);not null" json:"name"`
	Roast        string                      `gorm:"type:varchar(50)" json:"roast"`
	Origin       string                      `gorm:"type:varchar(255)" json:"origin"`
	TastingNotes datatypes.JSONSlice[string] `json:"tastingNotes"`
	Description  string                      `gorm:"type:text" json:"description"`
	Image        string                      `gorm:"type:varchar(500)" json:"image"`
	Price        decimal.NullDecimal         `gorm:"type:decimal(10,2)" json:"price"`
	Active       bool                        `gorm:"not null" json:"active"`
}
