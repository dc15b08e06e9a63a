package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem keeps the price the pickle had when it entered the cart.
type CartItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID            int64           `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_pickle" json:"cart_id"`
	PickleID          int64           `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_pickle" json:"pickle_id"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(10,2);not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
