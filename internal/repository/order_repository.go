package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// status/status_detail/payment_id/updated_at以外は触らない部分更新。
// PaymentIDが空文字のときは既存値を保持する（一度入ったIDは消さない）。
type OrderStatusUpdate struct {
	Status       model.OrderStatus
	StatusDetail string
	PaymentID    string
	DetailKnown  bool // falseならstatus_detailも据え置き（ヒント経由の更新）
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 照合は必ず (preference_id, user_id) の組で行う
	FindByPreferenceAndUser(ctx context.Context, preferenceID string, userID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, upd OrderStatusUpdate) error
}
