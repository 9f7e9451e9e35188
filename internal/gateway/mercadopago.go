package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront/internal/config"
)

type mercadoPagoClient struct {
	httpClient  *http.Client
	baseAPIURL  string
	accessToken string
}

func NewMercadoPagoClient(cfg *config.MercadoPago) Client {
	return &mercadoPagoClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseAPIURL:  cfg.BaseAPIURL,
		accessToken: cfg.AccessToken,
	}
}

func (c *mercadoPagoClient) Configured() bool {
	return c.accessToken != ""
}

type mpPreferenceResult struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type mpPaymentResult struct {
	ID           json.Number `json:"id"`
	Status       string      `json:"status"`
	StatusDetail string      `json:"status_detail"`
}

type mpErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *mercadoPagoClient) CreatePreference(ctx context.Context, prefReq PreferenceRequest) (Preference, error) {
	if !c.Configured() {
		return Preference{}, ErrNotConfigured
	}

	body, err := json.Marshal(prefReq)
	if err != nil {
		return Preference{}, fmt.Errorf("marshal preference payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseAPIURL+"/checkout/preferences",
		bytes.NewBuffer(body))
	if err != nil {
		return Preference{}, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Preference{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return Preference{}, err
	}

	var result mpPreferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Preference{}, fmt.Errorf("decode preference response: %w", err)
	}

	return Preference{
		ID:               result.ID,
		InitPoint:        result.InitPoint,
		SandboxInitPoint: result.SandboxInitPoint,
	}, nil
}

func (c *mercadoPagoClient) FetchPayment(ctx context.Context, paymentID string) (Payment, error) {
	if !c.Configured() {
		return Payment{}, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseAPIURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return Payment{}, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Payment{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return Payment{}, err
	}

	var result mpPaymentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Payment{}, fmt.Errorf("decode payment response: %w", err)
	}

	return Payment{
		ID:           result.ID.String(),
		Status:       result.Status,
		StatusDetail: result.StatusDetail,
	}, nil
}

// 5xxはUnavailable、4xxはRejected（本文のメッセージ付き）に振り分ける。
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	var eb mpErrorBody
	msg := ""
	if err := json.Unmarshal(raw, &eb); err == nil {
		if eb.Message != "" {
			msg = eb.Message
		} else if eb.Error != "" {
			msg = eb.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("status=%d", resp.StatusCode)
	}

	return &RejectedError{Message: msg}
}
