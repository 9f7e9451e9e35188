package handler

import (
	"errors"
	"net/http"
	"net/url"

	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// POST /checkout のHTTP
type CheckoutHandler struct {
	uc          *usecase.CheckoutUsecase
	frontendURL string
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase, frontendURL string) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, frontendURL: frontendURL}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.post)
}

// 成功時はゲートウェイのinit_pointへ302。失敗時は注文を作らず、
// 種類別メッセージ付きでカートへ戻す。
func (h *CheckoutHandler) post(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.InitiateCheckout(c.Request().Context(), userID)
	if err != nil {
		if !isExpectedCheckoutError(err) {
			c.Logger().Error("checkout failed: ", err)
		}
		return redirectToCart(c, h.frontendURL, usecase.MessageForError(err))
	}

	return c.Redirect(http.StatusFound, out.RedirectURL)
}

// 利用者向けメッセージで回収できる失敗か。それ以外はログに残す。
func isExpectedCheckoutError(err error) bool {
	if errors.Is(err, usecase.ErrEmptyCart) ||
		errors.Is(err, usecase.ErrPreferenceIncomplete) ||
		errors.Is(err, gateway.ErrNotConfigured) ||
		errors.Is(err, gateway.ErrUnavailable) {
		return true
	}
	_, rejected := gateway.AsRejected(err)
	return rejected
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	userID, ok := v.(int64)
	return userID, ok
}

// メッセージ付きでフロントのカートページへ戻す
func redirectToCart(c echo.Context, frontendURL string, message string) error {
	u := frontendURL + "/cart"
	if message != "" {
		u += "?message=" + url.QueryEscape(message)
	}
	return c.Redirect(http.StatusFound, u)
}
