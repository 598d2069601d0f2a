// Package app provides the dependency injection container assembling all
// application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/database"
	"github.com/userhub/userhub/internal/http"
	"github.com/userhub/userhub/internal/kernel"
	"github.com/userhub/userhub/internal/messaging"
	"github.com/userhub/userhub/internal/metrics"
	"github.com/userhub/userhub/internal/unitofwork"
	"github.com/userhub/userhub/internal/user/domain"
	userhttp "github.com/userhub/userhub/internal/user/http"
	userRepository "github.com/userhub/userhub/internal/user/repository"
	userService "github.com/userhub/userhub/internal/user/service"
	userUsecase "github.com/userhub/userhub/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to
// access them. Components are created lazily on first access.
type Container struct {
	config *config.Config

	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider

	userRepo   *userRepository.PostgreSQLUserRepository
	dispatcher *kernel.Dispatcher
	uowFactory unitofwork.Factory

	emailService  userUsecase.EmailService
	publisher     userUsecase.IntegrationEventPublisher
	rabbitMQ      *messaging.RabbitMQPublisher
	tokenProvider *userService.JWTTokenProvider

	userUseCase userUsecase.UseCase

	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	userRepoInit        sync.Once
	dispatcherInit      sync.Once
	uowFactoryInit      sync.Once
	emailServiceInit    sync.Once
	publisherInit       sync.Once
	tokenProviderInit   sync.Once
	userUseCaseInit     sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = fmt.Errorf("failed to connect to database: %w", err)
			return
		}
		c.db = db
	})
	if err, exists := c.initErrors["db"]; exists {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err, exists := c.initErrors["txManager"]; exists {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if err, exists := c.initErrors["metricsProvider"]; exists {
		return nil, err
	}
	return c.metricsProvider, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (*userRepository.PostgreSQLUserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}
		c.userRepo = userRepository.NewPostgreSQLUserRepository(db)
	})
	if err, exists := c.initErrors["userRepo"]; exists {
		return nil, err
	}
	return c.userRepo, nil
}

// EmailService returns the email service. Without Mailgun credentials the
// welcome email is logged instead of sent.
func (c *Container) EmailService() userUsecase.EmailService {
	c.emailServiceInit.Do(func() {
		logger := c.Logger()
		if c.config.MailgunDomain == "" || c.config.MailgunAPIKey == "" {
			c.emailService = userService.NewLogEmailService(logger)
			return
		}
		c.emailService = userService.NewMailgunEmailService(
			c.config.MailgunDomain,
			c.config.MailgunAPIKey,
			c.config.MailgunSender,
		)
	})
	return c.emailService
}

// IntegrationEventPublisher returns the broker publisher. Without a broker
// URL integration events are logged instead of published.
func (c *Container) IntegrationEventPublisher() (userUsecase.IntegrationEventPublisher, error) {
	c.publisherInit.Do(func() {
		logger := c.Logger()
		if c.config.RabbitMQURL == "" {
			c.publisher = messaging.NewLogPublisher(logger)
			return
		}
		publisher, err := messaging.NewRabbitMQPublisher(c.config.RabbitMQURL, c.config.RabbitMQQueue)
		if err != nil {
			c.initErrors["publisher"] = fmt.Errorf("failed to create rabbitmq publisher: %w", err)
			return
		}
		c.rabbitMQ = publisher
		c.publisher = publisher
	})
	if err, exists := c.initErrors["publisher"]; exists {
		return nil, err
	}
	return c.publisher, nil
}

// Dispatcher returns the domain event dispatcher with the registered
// handlers bridging domain events to integration events.
func (c *Container) Dispatcher() (*kernel.Dispatcher, error) {
	c.dispatcherInit.Do(func() {
		logger := c.Logger()

		publisher, err := c.IntegrationEventPublisher()
		if err != nil {
			c.initErrors["dispatcher"] = fmt.Errorf("failed to get publisher for dispatcher: %w", err)
			return
		}

		dispatcher := kernel.NewDispatcher(logger)
		dispatcher.Register(
			domain.UserRegisteredEventName,
			userUsecase.NewUserRegisteredHandler(c.EmailService(), publisher, logger),
		)
		c.dispatcher = dispatcher
	})
	if err, exists := c.initErrors["dispatcher"]; exists {
		return nil, err
	}
	return c.dispatcher, nil
}

// UnitOfWorkFactory returns the factory producing units of work bound to
// the user store and the dispatcher.
func (c *Container) UnitOfWorkFactory() (unitofwork.Factory, error) {
	c.uowFactoryInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["uowFactory"] = fmt.Errorf("failed to get tx manager for unit of work: %w", err)
			return
		}
		repo, err := c.UserRepository()
		if err != nil {
			c.initErrors["uowFactory"] = fmt.Errorf("failed to get user repository for unit of work: %w", err)
			return
		}
		dispatcher, err := c.Dispatcher()
		if err != nil {
			c.initErrors["uowFactory"] = fmt.Errorf("failed to get dispatcher for unit of work: %w", err)
			return
		}
		c.uowFactory = unitofwork.NewFactory(txManager, userRepository.NewUserStore(repo), dispatcher)
	})
	if err, exists := c.initErrors["uowFactory"]; exists {
		return nil, err
	}
	return c.uowFactory, nil
}

// TokenProvider returns the JWT access token provider. It backs both token
// minting in the use case and bearer-token authentication on the server, so
// the same signing key and claims validation apply to both sides.
func (c *Container) TokenProvider() *userService.JWTTokenProvider {
	c.tokenProviderInit.Do(func() {
		c.tokenProvider = userService.NewJWTTokenProvider(
			c.config.JWTSigningKey,
			c.config.JWTIssuer,
			c.config.JWTAudience,
			c.config.JWTExpiration,
		)
	})
	return c.tokenProvider
}

// UserUseCase returns the user use case, wrapped with metrics when enabled.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		logger := c.Logger()

		repo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get user repository for use case: %w", err)
			return
		}
		uowFactory, err := c.UnitOfWorkFactory()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get unit of work factory for use case: %w", err)
			return
		}

		useCase := userUsecase.NewUserUseCase(
			repo,
			uowFactory,
			userService.NewArgon2PasswordHasher(),
			c.TokenProvider(),
			logger,
		)

		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get metrics provider for use case: %w", err)
			return
		}
		if provider == nil {
			c.userUseCase = useCase
			return
		}

		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.userUseCase = userUsecase.NewUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["userUseCase"]; exists {
		return nil, err
	}
	return c.userUseCase, nil
}

// HTTPServer returns the public API server.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		logger := c.Logger()

		useCase, err := c.UserUseCase()
		if err != nil {
			c.initErrors["httpServer"] = fmt.Errorf("failed to get user use case for http server: %w", err)
			return
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["httpServer"] = fmt.Errorf("failed to get metrics provider for http server: %w", err)
			return
		}

		c.httpServer = http.NewServer(http.Config{
			Host:              c.config.ServerHost,
			Port:              c.config.ServerPort,
			CORSEnabled:       c.config.CORSEnabled,
			CORSAllowOrigins:  c.config.CORSAllowOrigins,
			LoginRateLimitRPS: c.config.RateLimitLoginRequestsPerSec,
			LoginRateBurst:    c.config.RateLimitLoginBurst,
		}, userhttp.NewUserHandler(useCase, logger), c.TokenProvider(), provider, logger)
	})
	if err, exists := c.initErrors["httpServer"]; exists {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err, exists := c.initErrors["metricsServer"]; exists {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.rabbitMQ != nil {
		c.rabbitMQ.Close()
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates a structured JSON logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
