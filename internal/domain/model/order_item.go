package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem snapshots name and price at checkout so historical orders
// stay fixed when the catalog changes later.
type OrderItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64           `gorm:"not null;index" json:"order_id"`
	PickleID          int64           `gorm:"not null;index" json:"pickle_id"`
	PickleName        string          `gorm:"type:varchar(255);not null" json:"pickle_name"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price_snapshot"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
