package gateway

import "context"

// 決済ゲートウェイに渡す明細。unit_priceはプロバイダ仕様に合わせて浮動小数。
type PreferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Quantity   int64   `json:"quantity"`
	CurrencyID string  `json:"currency_id"`
	UnitPrice  float64 `json:"unit_price"`
}

type Payer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             Payer            `json:"payer"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	ExternalReference string           `json:"external_reference,omitempty"`
}

type Preference struct {
	ID               string
	InitPoint        string
	SandboxInitPoint string
}

type Payment struct {
	ID           string
	Status       string
	StatusDetail string
}

// Client は決済コアが依存するゲートウェイ操作。
// どちらもブロッキングのネットワーク呼び出し。
type Client interface {
	// 資格情報が設定済みか。ネットワーク呼び出し前の前提チェック。
	Configured() bool
	CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error)
	FetchPayment(ctx context.Context, paymentID string) (Payment, error)
}
