package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 決済1回分の注文。statusの更新はReconcile経由のみ。
// PreferenceIDはゲートウェイ発行のIDで、コールバック照合のキー。
type Order struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64           `gorm:"not null;index" json:"user_id"`
	PreferenceID string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"preference_id"`
	PaymentID    string          `gorm:"type:varchar(100)" json:"payment_id"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StatusDetail string          `gorm:"type:varchar(255)" json:"status_detail"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
