package handler

import (
	"errors"
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ゲートウェイから購入者が戻ってくる3つの着地点。
// ゲートウェイは同じpreferenceについて何度でも呼び返しうる。
type PaymentHandler struct {
	uc          *usecase.ReconcileUsecase
	frontendURL string
}

func NewPaymentHandler(uc *usecase.ReconcileUsecase, frontendURL string) *PaymentHandler {
	return &PaymentHandler{uc: uc, frontendURL: frontendURL}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/payments")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/success", h.success)
	g.GET("/failure", h.failure)
	g.GET("/pending", h.pending)
}

func (h *PaymentHandler) success(c echo.Context) error {
	return h.handleReturn(c, usecase.ReturnKindSuccess)
}

func (h *PaymentHandler) failure(c echo.Context) error {
	return h.handleReturn(c, usecase.ReturnKindFailure)
}

func (h *PaymentHandler) pending(c echo.Context) error {
	return h.handleReturn(c, usecase.ReturnKindPending)
}

type OutcomeResponse struct {
	Kind    string              `json:"kind"`
	Order   usecase.OrderOutput `json:"order"`
	Message string              `json:"message,omitempty"`
}

func (h *PaymentHandler) handleReturn(c echo.Context, kind usecase.ReturnKind) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	q := usecase.ReturnQuery{
		PreferenceID: c.QueryParam("preference_id"),
		PaymentID:    c.QueryParam("payment_id"),
		StatusHint:   c.QueryParam("status"),
	}

	out, err := h.uc.HandleReturn(c.Request().Context(), userID, kind, q)
	if err != nil {
		// 注文が引けない・情報不足は利用者向けエラー。カートへ戻す。
		if errors.Is(err, usecase.ErrOrderNotFound) || errors.Is(err, usecase.ErrMissingPaymentInfo) {
			return redirectToCart(c, h.frontendURL, usecase.MessageForError(err))
		}
		c.Logger().Error("payment return failed: ", err)
		return redirectToCart(c, h.frontendURL, usecase.MessageForError(err))
	}

	return c.JSON(http.StatusOK, OutcomeResponse{
		Kind:    string(kind),
		Order:   out.Order,
		Message: out.Message,
	})
}
