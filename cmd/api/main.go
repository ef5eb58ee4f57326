package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/supportdesk/helpdesk-service/internal/api/http"
	"github.com/supportdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/config"
	"github.com/supportdesk/helpdesk-service/internal/events"
	"github.com/supportdesk/helpdesk-service/internal/notify"
	"github.com/supportdesk/helpdesk-service/internal/observability"
	"github.com/supportdesk/helpdesk-service/internal/persistence"
	"github.com/supportdesk/helpdesk-service/internal/repository"
	"github.com/supportdesk/helpdesk-service/internal/service"
	"github.com/supportdesk/helpdesk-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)

	if err := persistence.Seed(ctx, persistence.SeedDependencies{
		Statuses: statusRepo,
		Users:    userRepo,
		Articles: articleRepo,
	}, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}

	attachmentStore, err := storage.NewLocal(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	sessions := auth.NewRedisSessionStore(redis.Client)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokens, sessions, userRepo)

	dispatcher := events.NewInMemoryDispatcher()
	telegram := notify.NewTelegram(cfg.Telegram, logger)
	notifications := service.NewNotificationService(telegram, logger)
	notifications.Register(dispatcher)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: sessions,
		Tokens:   tokens,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	companyService := service.NewCompanyService(companyRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		StatusRepo: statusRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	messageService := service.NewMessageService(service.MessageDependencies{
		MessageRepo: messageRepo,
		TicketRepo:  ticketRepo,
		StatusRepo:  statusRepo,
		Store:       attachmentStore,
		MaxBytes:    cfg.Uploads.MaxAttachmentBytes,
		Logger:      logger,
	})
	knowledgeService := service.NewKnowledgeService(articleRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
		BodyLimit:             int(cfg.Uploads.MaxAttachmentBytes) * 4,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics,
		time.Duration(cfg.App.RequestTimeoutSeconds)*time.Second)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, authMiddleware),
		Users:          handlers.NewUsersHandler(userService),
		Companies:      handlers.NewCompaniesHandler(companyService),
		Tickets:        handlers.NewTicketsHandler(ticketService, messageService),
		Messages:       handlers.NewMessagesHandler(messageService),
		Knowledge:      handlers.NewKnowledgeHandler(knowledgeService),
		Statuses:       handlers.NewStatusesHandler(statusRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
