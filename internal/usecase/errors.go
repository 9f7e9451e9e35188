package usecase

import "errors"

var (
	// カートに商品が無い（利用者起因、サーバ障害ではない）
	ErrEmptyCart = errors.New("cart is empty")
	// (preference_id, user) で注文が引けない
	ErrOrderNotFound = errors.New("order not found")
	// コールバックにpreference_idすら無い
	ErrMissingPaymentInfo = errors.New("payment information is missing")
	// preferenceは作れたがidかinit_pointが欠けている
	ErrPreferenceIncomplete = errors.New("payment preference response is incomplete")
)
