package usecase

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	repo "storefront/internal/repository"
)

// Reconcileは決済コールバック（またはポーリング）を注文台帳へ反映する。
// ゲートウェイは同じpreferenceについて0回以上・順不同で呼び返してくるので、
// 同一入力の再実行が同じ最終状態に落ちること（冪等）が前提。
type ReconcileUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	gw            gateway.Client
}

func NewReconcileUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	gw gateway.Client,
) *ReconcileUsecase {
	return &ReconcileUsecase{tx: tx, orderRepo: orderRepo, orderItemRepo: orderItemRepo, gw: gw}
}

type ReturnKind string

const (
	ReturnKindSuccess ReturnKind = "success"
	ReturnKindFailure ReturnKind = "failure"
	ReturnKindPending ReturnKind = "pending"
)

type ReturnQuery struct {
	PreferenceID string
	PaymentID    string
	StatusHint   string
}

type ReturnOutput struct {
	Order   OrderOutput `json:"order"`
	Message string      `json:"message,omitempty"`
}

// HandleReturn は戻りコールバック1件を処理する。
// payment_idがあればゲートウェイの現況取得が正、無ければstatusヒントにフォールバック。
// どちらも無ければ注文には触らずErrMissingPaymentInfo。
func (u *ReconcileUsecase) HandleReturn(ctx context.Context, userID int64, kind ReturnKind, q ReturnQuery) (ReturnOutput, error) {
	if q.PreferenceID == "" {
		return ReturnOutput{}, ErrMissingPaymentInfo
	}

	order, err := u.findOrder(ctx, q.PreferenceID, userID)
	if err != nil {
		return ReturnOutput{}, err
	}

	out := ReturnOutput{}

	if q.PaymentID != "" {
		payment, fetchErr := u.gw.FetchPayment(ctx, q.PaymentID)
		if fetchErr != nil {
			// 取得失敗は注文を動かさない。メッセージだけ購入者に返す。
			out.Message = MessageForError(fetchErr)
		} else {
			order, err = u.applyPayment(ctx, q.PreferenceID, userID, payment)
			if err != nil {
				return ReturnOutput{}, err
			}
		}
	} else if q.StatusHint != "" {
		// ヒント経由はstatusのみ更新。未知の値は据え置き。
		if status, ok := mapHintStatus(q.StatusHint); ok {
			order, err = u.applyStatus(ctx, q.PreferenceID, userID, status)
			if err != nil {
				return ReturnOutput{}, err
			}
		}
	} else {
		// payment_idもヒントも無い。注文は触らず、その旨だけ伝える。
		out.Message = MessageForError(ErrMissingPaymentInfo)
	}

	switch kind {
	case ReturnKindFailure:
		// 失敗ページ経由なら、承認済み以外は強制的にrejectedへ落とす
		if order.Status != model.OrderStatusApproved {
			order, err = u.applyStatus(ctx, q.PreferenceID, userID, model.OrderStatusRejected)
			if err != nil {
				return ReturnOutput{}, err
			}
		}
	case ReturnKindPending:
		if order.Status == model.OrderStatusPending {
			// 取得失敗などのメッセージが既にあれば後ろに足す（上書きしない）
			if out.Message != "" {
				out.Message += " "
			}
			out.Message += "Your payment is pending confirmation."
		}
	}

	items, err := u.loadItems(ctx, order.ID)
	if err != nil {
		return ReturnOutput{}, err
	}
	out.Order = toOrderOutput(order, items)
	return out, nil
}

// 読取りだけなのでトランザクションは張らない。更新系だけWithinTxに入れる。
func (u *ReconcileUsecase) findOrder(ctx context.Context, preferenceID string, userID int64) (model.Order, error) {
	o, err := u.orderRepo.FindByPreferenceAndUser(ctx, preferenceID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 取得済みの決済状況を注文へ反映する。1コールバック＝1トランザクション。
// payment_id/status_detailは現在statusと同じでも毎回書き直す（冪等な上書き）。
func (u *ReconcileUsecase) applyPayment(ctx context.Context, preferenceID string, userID int64, payment gateway.Payment) (model.Order, error) {
	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByPreferenceAndUser(ctx, preferenceID, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		newStatus := mapPaymentStatus(payment.Status)

		if err := r.Orders().UpdateStatus(ctx, o.ID, repo.OrderStatusUpdate{
			Status:       newStatus,
			StatusDetail: payment.StatusDetail,
			DetailKnown:  true,
			PaymentID:    payment.ID,
		}); err != nil {
			return err
		}

		// 承認されたら所有者のカート明細を全部消す。この注文に対応する行だけ
		// ではなく全カートが対象。照合中に追加された行も消える。
		if newStatus == model.OrderStatusApproved {
			if _, err := r.CartItems().DeleteAllByUserID(ctx, o.UserID); err != nil {
				return err
			}
		}

		o.Status = newStatus
		o.StatusDetail = payment.StatusDetail
		if payment.ID != "" {
			o.PaymentID = payment.ID
		}
		order = o
		return nil
	})

	return order, err
}

// statusのみの更新（ヒント経由と失敗ページの強制reject用）。
func (u *ReconcileUsecase) applyStatus(ctx context.Context, preferenceID string, userID int64, status model.OrderStatus) (model.Order, error) {
	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByPreferenceAndUser(ctx, preferenceID, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, repo.OrderStatusUpdate{
			Status: status,
		}); err != nil {
			return err
		}

		o.Status = status
		order = o
		return nil
	})

	return order, err
}

func (u *ReconcileUsecase) loadItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return u.orderItemRepo.ListByOrderID(ctx, orderID)
}

// ゲートウェイが返すstatus文字列から注文statusへの写像。
// 大文字小文字は区別し、未知の値はrejected扱い。
func mapPaymentStatus(s string) model.OrderStatus {
	switch s {
	case "approved":
		return model.OrderStatusApproved
	case "pending", "in_process":
		return model.OrderStatusPending
	case "cancelled":
		return model.OrderStatusCancelled
	default:
		return model.OrderStatusRejected
	}
}

// クエリのstatusヒント用の写像。既知の5値だけを受け、未知はfalse。
func mapHintStatus(s string) (model.OrderStatus, bool) {
	switch s {
	case "approved":
		return model.OrderStatusApproved, true
	case "pending", "in_process":
		return model.OrderStatusPending, true
	case "cancelled":
		return model.OrderStatusCancelled, true
	case "rejected":
		return model.OrderStatusRejected, true
	default:
		return "", false
	}
}

// 購入者に見せるメッセージへの変換。ここに無い種類は呼び出し側でログして
// 汎用メッセージにする。
func MessageForError(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "You have no products in the cart."
	case errors.Is(err, ErrOrderNotFound):
		return "Order not found."
	case errors.Is(err, ErrMissingPaymentInfo):
		return "Payment information is missing."
	case errors.Is(err, ErrPreferenceIncomplete):
		return "There was an error creating the payment preference."
	case errors.Is(err, gateway.ErrNotConfigured):
		return "Payment processor is not configured."
	case errors.Is(err, gateway.ErrUnavailable):
		return "Mercado Pago is unavailable right now. Please try again later."
	}
	if re, ok := gateway.AsRejected(err); ok {
		return "Mercado Pago error: " + re.Message
	}
	return "Something went wrong. Please try again."
}
