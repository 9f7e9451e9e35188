package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	gormDB, err := db.Connect(cfg.Postgres)
	if err != nil {
		log.Fatal("failed to connect db: ", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal("failed to migrate: ", err)
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)

	//ゲートウェイ設定は明示的に渡す（ambientなグローバルは使わない）
	gw := gateway.NewMercadoPagoClient(&cfg.MercadoPago)

	backURLs := gateway.BackURLs{
		Success: cfg.BaseURL + "/payments/success",
		Failure: cfg.BaseURL + "/payments/failure",
		Pending: cfg.BaseURL + "/payments/pending",
	}

	//Usecase生成
	checkoutUC := usecase.NewCheckoutUsecase(
		txManager, cartRepo, cartRepo, productRepo, userRepo, gw,
		cfg.MercadoPago.CurrencyID, backURLs,
	)
	reconcileUC := usecase.NewReconcileUsecase(txManager, orderRepo, orderItemRepo, gw)
	orderUC := usecase.NewOrderUsecase(txManager)

	//Handler生成
	checkoutH := handler.NewCheckoutHandler(checkoutUC, cfg.FrontendURL)
	paymentH := handler.NewPaymentHandler(reconcileUC, cfg.FrontendURL)
	orderH := handler.NewOrderHandler(orderUC)

	srv := server.New(cfg, checkoutH, paymentH, orderH)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: ", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error: ", err)
	}
}
