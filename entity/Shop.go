package entity

import (
	"gorm.io/datatypes"
)

type Shop struct {
	Model
	Name     string            `gorm:"type:varchar(255);not null" json:"name"`
	Slug     string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	QRCode   string            `gorm:"column:qr_code;type:varchar(255);uniqueIndex;not null" json:"qrCode"`
	Settings datatypes.JSONMap `json:"settings"`

	// owned rows go away with the shop
	Coffees      []Coffee         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Pastries     []Pastry         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PairingRules []PairingRule    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Events       []AnalyticsEvent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Description is kept inside settings, like the other free-form shop options.
func (s *Shop) Description() string {
	if s.Settings == nil {
		return ""
	}
	if v, ok := s.Settings["description"].(string); ok {
		return v
	}
	return ""
}
