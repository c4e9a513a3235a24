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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/cart"
	"github.com/swdadsa/Shoppping-system-frontend/internal/checkout"
	"github.com/swdadsa/Shoppping-system-frontend/internal/config"
	h "github.com/swdadsa/Shoppping-system-frontend/internal/http"
	"github.com/swdadsa/Shoppping-system-frontend/internal/pricing"
	"github.com/swdadsa/Shoppping-system-frontend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Redis backs sessions, the checkout payload slot, and the cart
	// count mirror.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("failed to connect to redis: %v", err)
	}
	cancel()

	backendClient := api.NewClient(api.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	cartClient := api.NewCartClient(backendClient)
	accountClient := api.NewAccountClient(backendClient)
	itemsClient := api.NewItemsClient(backendClient)
	orderClient := api.NewOrderClient(backendClient)
	paymentClient := api.NewPaymentClient(backendClient)

	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)

	mirror := cart.NewCountMirror(redisClient)
	carts := cart.NewRegistry(cartClient)
	carts.OnCreate(func(userID int64, c *cart.Coordinator) {
		mirror.Follow(context.Background(), userID, c)
	})
	carts.OnDrop(func(userID int64) {
		mirror.Forget(context.Background(), userID)
	})

	flow := checkout.NewFlow(checkout.NewRedisPayloadStore(redisClient), accountClient, paymentClient)

	calc := pricing.Calculator{
		Policy:           cfg.Pricing.Tiebreak,
		ClampNonNegative: cfg.Pricing.ClampNonNegative,
	}

	accountHandler := h.NewAccountHandler(accountClient, sessions, carts, cfg.Server.RequestTimeout)
	cartHandler := h.NewCartHandler(carts, mirror, cfg.Server.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(flow, carts, cfg.Server.RequestTimeout)
	itemsHandler := h.NewItemsHandler(itemsClient, calc, cfg.Server.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(orderClient, cfg.Server.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-ID", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(h.SessionMiddleware(sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", accountHandler.SignIn)
		r.Delete("/session", accountHandler.SignOut)
		r.Post("/account", accountHandler.SignUp)
		r.Get("/account/profile", accountHandler.Profile)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Get("/count", cartHandler.GetCount)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Begin)
			r.Get("/payment", checkoutHandler.PreparePayment)
			r.Post("/payment", checkoutHandler.Confirm)
			r.Get("/result", checkoutHandler.Result)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemsHandler.List)
			r.Get("/{item_id}", itemsHandler.Detail)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.List)
			r.Get("/{order_id}", ordersHandler.Detail)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
