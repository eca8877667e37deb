// repository/order_repository.go
package repository

import (
	"context"
	"database/sql"
	"time"

	"brewpair/entity"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderRow is one checkout event with whatever is left of its coffee and pastry.
type OrderRow struct {
	EventID     string              `db:"id" json:"id"`
	ShopID      string              `db:"shop_id" json:"shopId"`
	ShopName    sql.NullString      `db:"shop_name" json:"-"`
	CoffeeName  sql.NullString      `db:"coffee_name" json:"-"`
	CoffeePrice decimal.NullDecimal `db:"coffee_price" json:"coffeePrice"`
	PastryName  sql.NullString      `db:"pastry_name" json:"-"`
	PastryPrice decimal.NullDecimal `db:"pastry_price" json:"pastryPrice"`
	Metadata    datatypes.JSONMap   `db:"metadata" json:"metadata"`
	CreatedAt   time.Time           `db:"created_at" json:"createdAt"`
}

func (r *AnalyticsRepository) CheckoutsByUser(ctx context.Context, userID string, limit int) ([]OrderRow, error) {
	q := `
		SELECT e.id, e.shop_id, s.name AS shop_name,
		       c.name AS coffee_name, c.price AS coffee_price,
		       p.name AS pastry_name, p.price AS pastry_price,
		       e.metadata, e.created_at
		  FROM analytics_events e
		  JOIN shops s ON s.id = e.shop_id
		  LEFT JOIN coffees c ON c.id = e.coffee_id
		  LEFT JOIN pastries p ON p.id = e.pastry_id
		 WHERE e.user_id = ? AND e.event_type = ?
		 ORDER BY e.created_at DESC
		 LIMIT ?`

	rows := []OrderRow{}
	err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(q), userID, string(entity.EventCheckout), limit)
	return rows, err
}
