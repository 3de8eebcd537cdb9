package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/assistant"
	"github.com/fondationhn/dossier-management/internal/auth"
	authPostgres "github.com/fondationhn/dossier-management/internal/auth/postgres"
	"github.com/fondationhn/dossier-management/internal/core/events"
	"github.com/fondationhn/dossier-management/internal/dossier"
	dossierPostgres "github.com/fondationhn/dossier-management/internal/dossier/postgres"
	"github.com/fondationhn/dossier-management/internal/formulaire"
	formulairePostgres "github.com/fondationhn/dossier-management/internal/formulaire/postgres"
	"github.com/fondationhn/dossier-management/internal/transport/rest"
	"github.com/fondationhn/dossier-management/internal/user"
	userPostgres "github.com/fondationhn/dossier-management/internal/user/postgres"
	"github.com/fondationhn/dossier-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config            *internal.Config
	DB                *sqlx.DB
	GormDB            *gorm.DB
	Router            *chi.Mux
	EventBus          *events.EventBus
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	DossierHandler    *dossier.Handler
	FormulaireHandler *formulaire.Handler
	AssistantHandler  *assistant.Handler
	Logger            *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(
		deps.Router,
		rest.RouterConfig{
			AllowedOrigins: deps.Config.Server.AllowedOrigins,
			LoginRPS:       deps.Config.RateLimit.LoginRPS,
			LoginBurst:     deps.Config.RateLimit.LoginBurst,
		},
		deps.DB.DB,
		deps.DB,
		deps.AuthHandler,
		deps.UserHandler,
		deps.DossierHandler,
		deps.FormulaireHandler,
		deps.AssistantHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(log)
	registerEventHandlers(eventBus, log)

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.TokenDuration)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, config.Security.BCryptCost, log)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userPostgres.NewRepository(gormDB), log)
	userHandler := user.NewHandler(userService)

	dossierService := dossier.NewService(dossierPostgres.NewRepository(gormDB), eventBus, log)
	dossierHandler := dossier.NewHandler(dossierService)

	formulaireService := formulaire.NewService(formulairePostgres.NewRepository(gormDB), dossierService, eventBus, log)
	formulaireHandler := formulaire.NewHandler(formulaireService)

	return &Dependencies{
		Config:            config,
		DB:                db,
		GormDB:            gormDB,
		Router:            chi.NewRouter(),
		EventBus:          eventBus,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		DossierHandler:    dossierHandler,
		FormulaireHandler: formulaireHandler,
		AssistantHandler:  assistant.NewHandler(),
		Logger:            log,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
