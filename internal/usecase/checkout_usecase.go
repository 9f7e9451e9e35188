package usecase

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// チェックアウト一連（カート読取→preference作成→台帳作成→リダイレクト先払い出し）。
type CheckoutUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	userRepo     repo.UserRepository
	gw           gateway.Client

	currencyID string
	backURLs   gateway.BackURLs
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	gw gateway.Client,
	currencyID string,
	backURLs gateway.BackURLs,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		gw:           gw,
		currencyID:   currencyID,
		backURLs:     backURLs,
	}
}

// チェックアウト時点のカート1行。価格は商品の現在価格。
type CartLine struct {
	Product  model.Product
	Quantity int64
}

type CartSnapshot struct {
	Lines []CartLine
	Total decimal.Decimal
}

type CheckoutOutput struct {
	OrderID     int64
	RedirectURL string
}

func (u *CheckoutUsecase) InitiateCheckout(ctx context.Context, userID int64) (CheckoutOutput, error) {
	// ネットワークに出る前の前提チェック
	if !u.gw.Configured() {
		return CheckoutOutput{}, gateway.ErrNotConfigured
	}

	snap, err := u.readCartSnapshot(ctx, userID)
	if err != nil {
		return CheckoutOutput{}, err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return CheckoutOutput{}, err
	}

	prefReq := BuildPreferenceRequest(snap.Lines, gateway.Payer{
		Name:    user.FirstName,
		Surname: user.LastName,
		Email:   user.Email,
	}, u.backURLs, u.currencyID, uuid.NewString())

	pref, err := u.gw.CreatePreference(ctx, prefReq)
	if err != nil {
		// ゲートウェイ失敗時は注文を一切作らない
		return CheckoutOutput{}, err
	}

	redirectURL := pref.InitPoint
	if redirectURL == "" {
		redirectURL = pref.SandboxInitPoint
	}
	if pref.ID == "" || redirectURL == "" {
		return CheckoutOutput{}, ErrPreferenceIncomplete
	}

	// Order+OrderItemは1トランザクションで作る（明細の無い注文を残さない）
	var orderID int64
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()

		id, err := r.Orders().Create(ctx, model.Order{
			UserID:       userID,
			PreferenceID: pref.ID,
			Status:       model.OrderStatusPending,
			Total:        snap.Total,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(snap.Lines))
		for _, line := range snap.Lines {
			productID := line.Product.ID
			items = append(items, model.OrderItem{
				ProductID:           &productID,
				ProductNameSnapshot: line.Product.Name,
				Quantity:            line.Quantity,
				UnitPriceSnapshot:   line.Product.Price,
				CreatedAt:           now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, id, items); err != nil {
			return err
		}

		orderID = id
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	return CheckoutOutput{OrderID: orderID, RedirectURL: redirectURL}, nil
}

// カート読取。行が無ければErrEmptyCart。
func (u *CheckoutUsecase) readCartSnapshot(ctx context.Context, userID int64) (CartSnapshot, error) {
	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartSnapshot{}, ErrEmptyCart
	}
	if err != nil {
		return CartSnapshot{}, err
	}

	cartItems, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartSnapshot{}, err
	}
	if len(cartItems) == 0 {
		return CartSnapshot{}, ErrEmptyCart
	}

	lines := make([]CartLine, 0, len(cartItems))
	total := decimal.Zero
	for _, ci := range cartItems {
		p, err := u.productRepo.FindByID(ctx, ci.ProductID)
		if err != nil {
			return CartSnapshot{}, err
		}
		lines = append(lines, CartLine{Product: p, Quantity: ci.Quantity})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
	}

	return CartSnapshot{Lines: lines, Total: total}, nil
}
