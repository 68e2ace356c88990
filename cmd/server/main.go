package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/markrenzo/portfolio-backend/internal/cards"
	"github.com/markrenzo/portfolio-backend/internal/chat"
	"github.com/markrenzo/portfolio-backend/internal/config"
	"github.com/markrenzo/portfolio-backend/internal/db"
	"github.com/markrenzo/portfolio-backend/internal/goroutine"
	httpHandlers "github.com/markrenzo/portfolio-backend/internal/http/handlers"
	httpRouter "github.com/markrenzo/portfolio-backend/internal/http/router"
	"github.com/markrenzo/portfolio-backend/internal/logger"
	"github.com/markrenzo/portfolio-backend/internal/repository"
	"github.com/markrenzo/portfolio-backend/internal/service"
	"github.com/markrenzo/portfolio-backend/internal/storage"
	"github.com/markrenzo/portfolio-backend/internal/webhook"
	"github.com/markrenzo/portfolio-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewAdminTokenManager(cfg.AdminTokenSecret, cfg.AdminTokenTTL)
	adminAuth := service.NewAdminAuthService(cfg.AdminKey, tokenManager)

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	contentRepo := repository.NewContentRepository(dbConn)
	adminRepo := repository.NewAdminRepository(dbConn)

	// Сервисы.
	portfolioService := service.NewPortfolioService(contentRepo)
	cardCache := cards.NewCache(portfolioService)
	resolver := cards.NewResolver(cardCache)
	chatService := chat.NewService(webhook.NewClient(cfg.WebhookURL, cfg.WebhookTimeout))

	// Предзагрузка карточек не блокирует старт сервера.
	recovery := goroutine.NewRecoveryHandler(logger.Log)
	recovery.SafeGoWithContext(ctx, func(ctx context.Context) {
		if err := cardCache.Preload(ctx); err != nil {
			logger.Log.Errorf("main: предзагрузка кэша карточек не удалась: %v", err)
			return
		}
		logger.Log.Infof("main: кэш карточек загружен, элементов: %d", cardCache.Len())
	})

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()

	// HTTP хэндлеры.
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	portfolioHandler := httpHandlers.NewPortfolioHandler(portfolioService, contentRepo, resolver)
	chatHandler := httpHandlers.NewChatHandler(chatService, resolver)
	wsHandler := httpHandlers.NewWSHandler(hub, chatService, resolver, cfg.AllowedOrigins)
	adminHandler := httpHandlers.NewAdminHandler(adminAuth, adminRepo, mediaStorage)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, healthHandler, portfolioHandler, chatHandler, wsHandler, adminHandler, adminAuth)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
