package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/skillswap/skillswap-backend/internal/cache"
	"github.com/skillswap/skillswap-backend/internal/config"
	"github.com/skillswap/skillswap-backend/internal/db"
	"github.com/skillswap/skillswap-backend/internal/goroutine"
	httpHandlers "github.com/skillswap/skillswap-backend/internal/http/handlers"
	"github.com/skillswap/skillswap-backend/internal/http/middleware"
	httpRouter "github.com/skillswap/skillswap-backend/internal/http/router"
	"github.com/skillswap/skillswap-backend/internal/infrastructure/persistence"
	"github.com/skillswap/skillswap-backend/internal/interface/http/handler"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/service"
	"github.com/skillswap/skillswap-backend/internal/storage"
	"github.com/skillswap/skillswap-backend/internal/usecase/listing"
	"github.com/skillswap/skillswap-backend/internal/usecase/match"
	"github.com/skillswap/skillswap-backend/internal/usecase/matchrequest"
	"github.com/skillswap/skillswap-backend/internal/usecase/user"
	"github.com/skillswap/skillswap-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.Env)

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	monitor := db.NewMonitor(dbConn, cfg.DBHealthInterval)
	goroutine.SafeGoWithContext(ctx, "db-monitor", monitor.Run)

	// Redis необязателен: без него счётчики и лимиты живут в памяти процесса.
	var redisClient *redis.Client
	var countStore cache.Store
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("main: %v", err)
		}
		defer redisClient.Close()
		countStore = cache.NewRedisStore(redisClient, "skillswap:")
		logger.Log.WithField("addr", cfg.Redis.Addr).Info("main: Redis подключён")
	} else {
		countStore = cache.NewMemoryStore(ctx)
	}

	rateStore, err := middleware.NewRateLimitStore(redisClient)
	if err != nil {
		log.Fatalf("main: не удалось создать хранилище rate limit: %v", err)
	}

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, "ws-hub", hub.Run)
	notifier := ws.NewNotifier(hub)

	// Репозитории.
	userRepo := persistence.NewUserRepositoryAdapter(dbConn)
	listingRepo := persistence.NewSkillListingRepositoryAdapter(dbConn)
	requestRepo := persistence.NewMatchRequestRepositoryAdapter(dbConn)
	matchRepo := persistence.NewMatchRepositoryAdapter(dbConn)

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := service.NewAuthService(userRepo, tokenManager)

	// Use cases.
	pendingCounter := matchrequest.NewPendingCounter(requestRepo, countStore, cfg.CountCacheTTL)

	listingHandler := handler.NewListingHandler(
		listing.NewCreateUseCase(listingRepo),
		listing.NewGetUseCase(listingRepo),
		listing.NewUpdateUseCase(listingRepo),
		listing.NewDeleteUseCase(listingRepo),
		listing.NewListUseCase(listingRepo, userRepo),
	)
	matchHandler := handler.NewMatchHandler(
		match.NewCreateUseCase(matchRepo, listingRepo, userRepo),
		match.NewListUseCase(matchRepo),
		match.NewUpdateStatusUseCase(matchRepo, notifier),
		match.NewDeleteUseCase(matchRepo, userRepo),
	)
	matchRequestHandler := handler.NewMatchRequestHandler(
		matchrequest.NewSendUseCase(requestRepo, userRepo, matchRepo, pendingCounter, notifier),
		matchrequest.NewListUseCase(requestRepo),
		matchrequest.NewAcceptUseCase(requestRepo, matchRepo, userRepo, pendingCounter, notifier),
		matchrequest.NewDeclineUseCase(requestRepo, pendingCounter, notifier),
		matchrequest.NewCountPendingUseCase(pendingCounter),
	)
	userHandler := handler.NewUserHandler(
		user.NewGetUseCase(userRepo),
		user.NewSearchUseCase(userRepo),
		user.NewUpdateProfileUseCase(userRepo),
	)

	authHandler := httpHandlers.NewAuthHandler(authService)
	healthHandler := httpHandlers.NewHealthHandler(monitor, hub)
	mediaHandler := httpHandlers.NewMediaHandler(photoStorage, user.NewSetAvatarUseCase(userRepo))
	wsHandler := httpHandlers.NewWSHandler(hub, authService, cfg.AllowedOrigins)

	// Роутер.
	if err := httpRouter.RegisterValidators(); err != nil {
		log.Fatalf("main: ошибка регистрации валидаторов: %v", err)
	}
	engine := httpRouter.SetupRouter(
		cfg,
		authService,
		monitor,
		rateStore,
		authHandler,
		healthHandler,
		mediaHandler,
		wsHandler,
		listingHandler,
		matchHandler,
		matchRequestHandler,
		userHandler,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
	logger.Log.Info("main: сервер остановлен")
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
