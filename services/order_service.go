package services

import (
	"context"
	"time"

	"brewpair/repository"

	"github.com/shopspring/decimal"
)

const orderHistoryLimit = 100

// Orders are not stored separately: a customer's order history is the
// list of checkout events recorded under their account.
type OrderHistoryItem struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference,omitempty"`
	ShopID      string    `json:"shopId"`
	ShopName    string    `json:"shopName"`
	Coffee      string    `json:"coffee,omitempty"`
	Pastry      string    `json:"pastry,omitempty"`
	OrderType   string    `json:"orderType,omitempty"`
	TableNumber string    `json:"tableNumber,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Total       string    `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Orders lists a customer's checkouts, newest first.
func (s *AnalyticsService) Orders(ctx context.Context, userID string) ([]OrderHistoryItem, error) {
	rows, err := s.stats.CheckoutsByUser(ctx, userID, orderHistoryLimit)
	if err != nil {
		return nil, err
	}
	out := make([]OrderHistoryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, OrderHistoryItem{
			ID:          r.EventID,
			Reference:   metaString(r.Metadata, "order_ref"),
			ShopID:      r.ShopID,
			ShopName:    r.ShopName.String,
			Coffee:      r.CoffeeName.String,
			Pastry:      r.PastryName.String,
			OrderType:   metaString(r.Metadata, "order_type"),
			TableNumber: metaString(r.Metadata, "table_number"),
			Notes:       metaString(r.Metadata, "notes"),
			Total:       orderTotal(r),
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

// orderTotal prefers the total charged at checkout; older rows fall back to
// today's prices of whatever items still exist.
func orderTotal(r repository.OrderRow) string {
	if recorded, err := decimal.NewFromString(metaString(r.Metadata, "total")); err == nil {
		return recorded.StringFixed(2)
	}
	total := decimal.Zero
	if r.CoffeePrice.Valid {
		total = total.Add(r.CoffeePrice.Decimal)
	}
	if r.PastryPrice.Valid {
		total = total.Add(r.PastryPrice.Decimal)
	}
	return total.StringFixed(2)
}

func metaString(md map[string]any, key string) string {
	if v, ok := md[key].(string); ok {
		return v
	}
	return ""
}
