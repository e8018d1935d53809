package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/shopbot-backend/internal/config"
	"github.com/yungbote/shopbot-backend/internal/data/db"
	authrepo "github.com/yungbote/shopbot-backend/internal/data/repos/auth"
	specrepo "github.com/yungbote/shopbot-backend/internal/data/repos/spec"
	"github.com/yungbote/shopbot-backend/internal/handlers"
	"github.com/yungbote/shopbot-backend/internal/jobs"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
	"github.com/yungbote/shopbot-backend/internal/platform/openai"
	"github.com/yungbote/shopbot-backend/internal/server"
	"github.com/yungbote/shopbot-backend/internal/services"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// DB
	dbService, err := db.New(log)
	if err != nil {
		log.Fatal("DB init failed", "error", err)
	}
	if err := db.AutoMigrateAll(dbService.DB()); err != nil {
		log.Fatal("DB migration failed", "error", err)
	}
	gdb := dbService.DB()

	// Repos
	tokenRepo := authrepo.NewKakaoTokenRepo(gdb, log)
	specRepo := specrepo.NewCategorySpecRepo(gdb, log)

	// Category structure
	catalog, err := services.LoadCatalog(cfg.CategoryFile, log)
	if err != nil {
		log.Fatal("Category structure load failed", "error", err)
	}

	// External collaborators
	llm, err := openai.NewClient(log)
	if err != nil {
		log.Fatal("OpenAI client init failed", "error", err)
	}
	crawler := services.NewHTTPCrawler(cfg.CrawlerBaseURL, log)
	kakao := services.NewKakaoAuth(cfg.KakaoRESTAPIKey, cfg.OAuthStateSecret, cfg.BaseURL, log)

	// Services
	sessions := services.NewSessionStore(log)
	oracle := services.NewOracle(llm, catalog, log)
	recommender := services.NewRecommender(oracle, catalog, log)
	specCache := services.NewSpecCache(specRepo, log)
	gate := services.NewAuthGate(tokenRepo, kakao, sessions, log)

	// Deferred cache writes
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unreachable, deferred writes stay in-process", "error", err)
			rdb = nil
		}
	}
	specWriter := jobs.NewSpecWriter(rdb, specCache, cfg.SpecWriterBacklog, log)

	conversation := services.NewConversation(
		sessions, gate, recommender, oracle, specCache, crawler, specWriter, log)

	// Handlers
	webhookHandler := handlers.NewWebhookHandler(conversation, log)
	oauthHandler := handlers.NewOAuthHandler(kakao, tokenRepo, log)

	router := server.NewRouter(server.RouterConfig{
		WebhookHandler: webhookHandler,
		OAuthHandler:   oauthHandler,
		Log:            log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		if err := specWriter.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("Spec writer stopped", "error", err)
		}
	}()

	log.Info("Starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
