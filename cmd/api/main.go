package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopfront/internal/auth"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/db"
	"shopfront/internal/httpserver"
	"shopfront/internal/payment"
	adminrepo "shopfront/internal/repository/admin"
	newsletterrepo "shopfront/internal/repository/newsletter"
	accountsvc "shopfront/internal/service/account"
	adminsvc "shopfront/internal/service/admin"
	cartsvc "shopfront/internal/service/cart"
	checkoutsvc "shopfront/internal/service/checkout"
	orderssvc "shopfront/internal/service/orders"
	wishlistsvc "shopfront/internal/service/wishlist"
	"shopfront/internal/statestore"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.PaymentSecretKey == "" {
		logger.Printf("PAYMENT_SECRET_KEY is not set, checkout will be rejected by the gateway")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store := statestore.NewPostgres(dbpool, logger)

	cartService := cartsvc.New(store)
	wishlistService := wishlistsvc.New(store)
	orderService := orderssvc.New(store, logger)

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	accountService := accountsvc.New(catalogClient, store)

	gateway := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey, cfg.PaymentTimeout, logger)
	checkoutService := checkoutsvc.New(cartService, orderService, store, gateway, cfg.PaymentCallbackURL, cfg.PaymentCurrency, logger)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	adminRepo := adminrepo.NewPostgres(dbpool)
	adminService := adminsvc.New(adminRepo, tokens)
	newsletterRepo := newsletterrepo.NewPostgres(dbpool)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		WishlistSvc: wishlistService,
		OrderSvc:    orderService,
		CheckoutSvc: checkoutService,
		AccountSvc:  accountService,
		Catalog:     catalogClient,
		Newsletter:  newsletterRepo,
		AdminSvc:    adminService,
		Tokens:      tokens,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
