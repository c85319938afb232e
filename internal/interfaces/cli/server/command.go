// Package server implements the `naplink server` command: configuration,
// dependency wiring and the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	auditusecases "naplink/internal/application/audit/usecases"
	clientusecases "naplink/internal/application/client/usecases"
	connusecases "naplink/internal/application/connection/usecases"
	netusecases "naplink/internal/application/network/usecases"
	planusecases "naplink/internal/application/plan/usecases"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/auth"
	"naplink/internal/infrastructure/cache"
	"naplink/internal/infrastructure/config"
	"naplink/internal/infrastructure/database"
	"naplink/internal/infrastructure/migration"
	"naplink/internal/infrastructure/repository"
	httpRouter "naplink/internal/interfaces/http"
	"naplink/internal/interfaces/http/handlers"
	"naplink/internal/interfaces/http/middleware"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/db"
	"naplink/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the naplink HTTP server with the configured environment.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == constants.EnvProduction {
			log.Warnw("auto-migration enabled in production - this is not recommended")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	gdb := database.Get()
	txManager := db.NewTransactionManager(gdb)

	// Audit plumbing: the ledger repository feeds the interceptor, which
	// every tracked repository reports through.
	auditRepo := repository.NewAuditRecordRepository(gdb, log)
	registry := auditinfra.DefaultRegistry()
	interceptor := auditinfra.NewInterceptor(auditRepo, registry, log)

	napRepo := repository.NewNAPRepository(gdb, interceptor, log)
	portRepo := repository.NewPortRepository(gdb, interceptor, log)
	clientRepo := repository.NewClientRepository(gdb, interceptor, log)
	planRepo := repository.NewPlanRepository(gdb, interceptor, log)
	connRepo := repository.NewConnectionRepository(gdb, interceptor, log)

	// Use cases.
	allocatePortUC := connusecases.NewAllocatePortUseCase(txManager, connRepo, portRepo, napRepo, clientRepo, planRepo, log)
	transitionUC := connusecases.NewTransitionConnectionUseCase(txManager, connRepo, portRepo, napRepo, planRepo, log)
	releasePortUC := connusecases.NewReleasePortUseCase(txManager, connRepo, portRepo, napRepo, log)
	deleteClientUC := connusecases.NewDeleteClientUseCase(txManager, clientRepo, connRepo, portRepo, napRepo, log)
	getConnUC := connusecases.NewGetConnectionUseCase(connRepo, clientRepo, planRepo, portRepo, log)
	listConnsUC := connusecases.NewListConnectionsUseCase(connRepo, log)

	createNAPUC := netusecases.NewCreateNAPUseCase(txManager, napRepo, portRepo, log)
	getNAPUC := netusecases.NewGetNAPUseCase(napRepo, portRepo, log)
	listNAPsUC := netusecases.NewListNAPsUseCase(napRepo, portRepo, log)
	setNAPMaintenanceUC := netusecases.NewSetNAPMaintenanceUseCase(txManager, napRepo, portRepo, log)
	backfillPortsUC := netusecases.NewBackfillPortsUseCase(txManager, napRepo, portRepo, log)
	scanCapacityUC := netusecases.NewScanCapacityUseCase(txManager, napRepo, portRepo, log)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(cmd.Context()).Err(); err != nil {
			log.Warnw("redis unreachable, capacity alert dedup disabled", "error", err)
		} else {
			alerts := cache.NewSaturationAlerts(redisClient)
			cooldown := time.Duration(cfg.Capacity.AlertCooldownMinutes) * time.Minute
			scanCapacityUC.SetAlertDeduplicator(alerts, cooldown)
			log.Infow("capacity alert dedup enabled", "cooldown", cooldown)
		}
	}

	getClientUC := clientusecases.NewGetClientUseCase(clientRepo, connRepo, log)
	listClientsUC := clientusecases.NewListClientsUseCase(clientRepo, log)

	createPlanUC := planusecases.NewCreatePlanUseCase(txManager, planRepo, log)
	listPlansUC := planusecases.NewListPlansUseCase(planRepo, log)

	queryAuditLogUC := auditusecases.NewQueryAuditLogUseCase(auditRepo, log)
	auditStatsUC := auditusecases.NewAuditStatsUseCase(auditRepo, log)
	listTrackedTablesUC := auditusecases.NewListTrackedTablesUseCase(registry)

	// Handlers.
	napHandler := handlers.NewNAPHandler(createNAPUC, getNAPUC, listNAPsUC, setNAPMaintenanceUC, backfillPortsUC, scanCapacityUC)
	connectionHandler := handlers.NewConnectionHandler(allocatePortUC, transitionUC, releasePortUC, getConnUC, listConnsUC)
	clientHandler := handlers.NewClientHandler(getClientUC, listClientsUC, deleteClientUC)
	planHandler := handlers.NewPlanHandler(createPlanUC, listPlansUC)
	auditHandler := handlers.NewAuditHandler(queryAuditLogUC, auditStatsUC, listTrackedTablesUC)

	jwtService := auth.NewJWTService(&cfg.Auth.JWT)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	router := httpRouter.NewRouter(
		napHandler,
		connectionHandler,
		clientHandler,
		planHandler,
		auditHandler,
		authMiddleware,
		cfg.Server.AllowedOrigins,
		env,
	)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("server stopped unexpectedly", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}
