package entity

const (
	MinMatchScore = 1
	MaxMatchScore = 100
)

// PairingRule links one coffee and one pastry of the same shop.
type PairingRule struct {
	Model
	ShopID     string `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_pairing_rules_unique" json:"shopId"`
	CoffeeID   string `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_pairing_rules_unique" json:"coffeeId"`
	PastryID   string `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_pairing_rules_unique" json:"pastryId"`
	MatchScore int    `gorm:"not null" json:"matchScore"`
	Reasoning  string `gorm:"type:text" json:"reasoning"`
	Active     bool   `gorm:"not null" json:"active"`

	// preload when needed
	Coffee *Coffee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"coffee,omitempty"`
	Pastry *Pastry `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pastry,omitempty"`
}
