package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kindmarket/kindmarket/internal/config"
	"github.com/kindmarket/kindmarket/internal/es"
	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/httpserver"
	"github.com/kindmarket/kindmarket/internal/logging"
	"github.com/kindmarket/kindmarket/internal/payment"
	"github.com/kindmarket/kindmarket/internal/repo"
	"github.com/kindmarket/kindmarket/internal/service"
	"github.com/kindmarket/kindmarket/internal/service/search"
	"github.com/kindmarket/kindmarket/internal/service/token"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	db, err := config.InitDB(ctx, configuration)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var producer events.Publisher = events.NopPublisher{}
	if configuration.KAFKA_ADDRESS != "" {
		if kp := events.NewKafkaPublisher(configuration.KAFKA_ADDRESS); kp != nil {
			producer = kp
		}
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		// Search degrades to unavailable; the shop keeps running.
		logger.Warn("elasticsearch unavailable", "error", err)
		esClient = nil
	}

	var payments payment.Client = &payment.StaticClient{}
	if configuration.PAYMENT_URL != "" {
		payments = payment.NewHTTPClient(configuration.PAYMENT_URL)
	}

	r := repo.New(db)
	tokens := &token.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	sellerSvc := &service.SellerService{Repo: r}

	deps := httpserver.Deps{
		DB:     db,
		Tokens: tokens,
		AuthHandler: &httpserver.AuthHandler{
			Repo: r, Tokens: tokens, Producer: producer,
			JWTSecret: jwtSecret, RefreshSecret: refreshSecret,
		},
		ProductHandler:  &httpserver.ProductHandler{Svc: &service.CatalogService{Repo: r, Seller: sellerSvc}, ES: esClient, Producer: producer},
		CartHandler:     &httpserver.CartHandler{Svc: &service.CartService{Repo: r}, Producer: producer},
		CheckoutHandler: &httpserver.CheckoutHandler{Svc: &service.CheckoutService{Repo: r, Payments: payments}, Producer: producer},
		OrderHandler:    &httpserver.OrderHandler{Svc: &service.OrderService{Repo: r}},
		SellerHandler:   &httpserver.SellerHandler{Svc: sellerSvc, Producer: producer},
		AdminHandler:    &httpserver.AdminHandler{Svc: &service.AdminService{Repo: r}, Sellers: sellerSvc, Producer: producer},
		CharityHandler:  &httpserver.CharityHandler{Svc: &service.CharityService{Repo: r}, Producer: producer},
		SearchHandler:   &httpserver.SearchHandler{ES: esClient, Index: search.ProductIndex},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
