package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文確定時点のカート明細スナップショット。作成後は不変。
// ProductIDは弱参照（商品削除でNULLになるだけで明細は残す）。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           *int64          `gorm:"index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price_snapshot"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
