package usecase

import (
	"strconv"
	"strings"

	"storefront/internal/gateway"
)

// カートスナップショットをpreferenceリクエストに変換する。副作用なし。
// auto_returnはプロバイダ側の制約でHTTPSのsuccess URLにしか付けられない
// （暗号化された戻り先でのみ自動リダイレクトが提供される）。
func BuildPreferenceRequest(
	lines []CartLine,
	payer gateway.Payer,
	backURLs gateway.BackURLs,
	currencyID string,
	externalReference string,
) gateway.PreferenceRequest {
	items := make([]gateway.PreferenceItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, gateway.PreferenceItem{
			ID:         strconv.FormatInt(line.Product.ID, 10),
			Title:      line.Product.Name,
			Quantity:   line.Quantity,
			CurrencyID: currencyID,
			UnitPrice:  line.Product.Price.InexactFloat64(),
		})
	}

	req := gateway.PreferenceRequest{
		Items:             items,
		Payer:             payer,
		BackURLs:          backURLs,
		ExternalReference: externalReference,
	}

	if strings.HasPrefix(backURLs.Success, "https://") {
		req.AutoReturn = "approved"
	}

	return req
}
