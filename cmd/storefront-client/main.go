package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trendmart/storefront-client/internal/api/handlers"
	"github.com/trendmart/storefront-client/internal/api/middleware"
	"github.com/trendmart/storefront-client/internal/cache"
	"github.com/trendmart/storefront-client/internal/config"
	"github.com/trendmart/storefront-client/internal/dispatch"
	"github.com/trendmart/storefront-client/internal/health"
	"github.com/trendmart/storefront-client/internal/metrics"
	"github.com/trendmart/storefront-client/internal/models"
	"github.com/trendmart/storefront-client/internal/notify"
	"github.com/trendmart/storefront-client/internal/query"
	"github.com/trendmart/storefront-client/internal/ratelimit"
	"github.com/trendmart/storefront-client/internal/store"
	"github.com/trendmart/storefront-client/internal/tracing"
	"github.com/trendmart/storefront-client/pkg/shopapi"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing.Endpoint)
	if err != nil {
		slog.Error("Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Addr,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cancel()

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Backend client
	backend := shopapi.New(shopapi.Config{
		BaseURL:        cfg.Backend.BaseURL,
		Timeout:        cfg.Backend.Timeout,
		MaxRetries:     cfg.Backend.MaxRetries,
		RetryWaitMin:   cfg.Backend.RetryWaitMin,
		RetryWaitMax:   cfg.Backend.RetryWaitMax,
		BreakerTimeout: cfg.Backend.BreakerTimeout,
		DefaultLang:    cfg.Backend.DefaultLang,
	})

	// Client state: sessions, notifications, dispatcher
	pageCache := cache.NewRedisCache(redisClient, &cfg.CacheConfig)
	sessions := store.NewManager(cfg.Session.TTL)
	notifier := notify.New()
	limiter := ratelimit.New(redisClient, &cfg.RateConfig)
	dispatcher := dispatch.New(backend, backend, notifier, limiter, []byte(cfg.Security.JWTKey))

	go sessions.Run(ctx, cfg.Session.SweepInterval)

	// Paginated query layer
	productPages := query.NewPaginator(pageCache, cache.ProductPageKeyPrefix, cfg.CacheConfig.DefaultTTL,
		func(ctx context.Context, cursor string) (models.Page[models.Product], error) {
			return backend.FetchProductsPage(ctx, cursor)
		})

	cartPages := query.NewRegistry(func(userID string) *query.Paginator[models.CartItem] {
		return query.NewPaginator(pageCache, cache.Key(cache.CartPageKeyPrefix, userID), cfg.CacheConfig.PageTTL,
			func(ctx context.Context, cursor string) (models.Page[models.CartItem], error) {
				return backend.FetchCartPage(ctx, middleware.TokenFromContext(ctx), cursor)
			})
	})

	wishlistPages := query.NewRegistry(func(userID string) *query.Paginator[models.WishlistItem] {
		return query.NewPaginator(pageCache, cache.Key(cache.WishlistPageKeyPrefix, userID), cfg.CacheConfig.PageTTL,
			func(ctx context.Context, cursor string) (models.Page[models.WishlistItem], error) {
				return backend.FetchWishlistPage(ctx, middleware.TokenFromContext(ctx), cursor)
			})
	})

	// Handlers
	cartHandler := handlers.NewCartHandler(sessions, dispatcher, cartPages)
	wishlistHandler := handlers.NewWishlistHandler(sessions, dispatcher, wishlistPages)
	productHandler := handlers.NewProductHandler(productPages)
	notificationHandler := handlers.NewNotificationHandler(notifier)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error initializing health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("client state initialized", slog.String("env", cfg.Env), slog.String("backend", cfg.Backend.BaseURL))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/refresh", authMiddleware.Authenticate(cartHandler.RefreshCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/cart/items/{id}/decrement", authMiddleware.Authenticate(cartHandler.DecrementItem()))
	routerMux.HandleFunc("GET /api/v1/wishlist", authMiddleware.Authenticate(wishlistHandler.GetWishlist()))
	routerMux.HandleFunc("POST /api/v1/wishlist/refresh", authMiddleware.Authenticate(wishlistHandler.RefreshWishlist()))
	routerMux.HandleFunc("GET /api/v1/wishlist/count", authMiddleware.Authenticate(wishlistHandler.GetCount()))
	routerMux.HandleFunc("POST /api/v1/wishlist/items", authMiddleware.Authenticate(wishlistHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/v1/wishlist/items/{id}", authMiddleware.Authenticate(wishlistHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/wishlist/items/{id}/move-to-cart", authMiddleware.Authenticate(wishlistHandler.MoveToCart()))
	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-ctx.Done()

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}
