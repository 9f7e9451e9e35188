package gateway

import "errors"

var (
	// 資格情報が未設定
	ErrNotConfigured = errors.New("payment gateway is not configured")
	// ネットワーク障害・タイムアウト・5xx
	ErrUnavailable = errors.New("payment gateway unavailable")
)

// 4xx。プロバイダのエラーメッセージを購入者向け表示に使う。
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "payment gateway rejected request: " + e.Message
}

func AsRejected(err error) (*RejectedError, bool) {
	var re *RejectedError
	ok := errors.As(err, &re)
	return re, ok
}
