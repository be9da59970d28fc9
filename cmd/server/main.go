package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/foodgram-backend/config"
	"github.com/d60-Lab/foodgram-backend/internal/api"
	"github.com/d60-Lab/foodgram-backend/internal/api/handler"
	"github.com/d60-Lab/foodgram-backend/internal/cache"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
	"github.com/d60-Lab/foodgram-backend/internal/service"
	"github.com/d60-Lab/foodgram-backend/internal/storage"
	"github.com/d60-Lab/foodgram-backend/pkg/database"
	"github.com/d60-Lab/foodgram-backend/pkg/logger"
	"github.com/d60-Lab/foodgram-backend/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.Server.Mode)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Tracing.Endpoint != "" {
		shutdown, err := tracing.Init(ctx, "foodgram-backend", cfg.Tracing.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, caches disabled", zap.Error(err))
			redisClient = nil
		}
	}

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	images := storage.NewImageStore(cfg.Media.Root, cfg.Media.BaseURL)
	linkCache := cache.NewShortLinkCache(redisClient, cfg.ShortLink.CacheTTL)
	denylist := cache.NewTokenDenylist(redisClient)

	authSvc := service.NewAuthService(userRepo, denylist, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userSvc := service.NewUserService(userRepo, subscriptionRepo, images)
	referenceSvc := service.NewReferenceService(tagRepo, ingredientRepo)
	recipeSvc := service.NewRecipeService(
		recipeRepo, tagRepo, ingredientRepo, collectionRepo, subscriptionRepo,
		images, linkCache, cfg.ShortLink.BaseURL,
	)
	collectionSvc := service.NewCollectionService(collectionRepo, recipeRepo)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, userRepo, recipeRepo)
	shoppingListSvc := service.NewShoppingListService(recipeRepo)

	h := handler.NewHandler(
		authSvc, userSvc, referenceSvc, recipeSvc, collectionSvc, subscriptionSvc, shoppingListSvc,
		handler.Options{
			DefaultPageSize: cfg.Server.DefaultPageSize,
			FrontendBaseURL: cfg.Server.FrontendBaseURL,
		},
	)
	router := api.NewRouter(cfg, h, authSvc)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
