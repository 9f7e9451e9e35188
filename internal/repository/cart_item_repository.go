package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// ユーザーの全カート明細を削除（承認時のカートクリア用）
	DeleteAllByUserID(ctx context.Context, userID int64) (int64, error)
}
