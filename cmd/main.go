package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-budget-manager/docs"
	"github.com/sbilibin2017/gw-budget-manager/internal/jwt"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/mailer"
	"github.com/sbilibin2017/gw-budget-manager/internal/middlewares"
	"github.com/sbilibin2017/gw-budget-manager/internal/migrations"
	"github.com/sbilibin2017/gw-budget-manager/internal/repositories"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const (
	shutdownTimeout   = 10 * time.Second
	kafkaBatchTimeout = 10 * time.Millisecond
)

// @title gw-budget-manager API
// @version 1.0.0
// @description Personal budget tracking: authenticated CRUD over categorized budgets, a spending limit and aggregated summaries
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run initializes the logger, Postgres, Redis, Kafka, the mail channel and the HTTP server.
// It blocks until ctx is cancelled or a termination signal arrives, then drains the server.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.postgresDSN())
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.postgresDSN()); err != nil {
			return err
		}
		logger.Log.Info("Database migrations applied")
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to Redis: %w", err)
	}
	defer rdb.Close()

	// Budget events are optional; the service skips publishing on a nil writer.
	var budgetEvents services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaBudgetTopic)
		defer w.Close()
		budgetEvents = w
		logger.Log.Infow("Publishing budget events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaBudgetTopic)
	}

	sender, closeSender, err := newMailSender(cfg)
	if err != nil {
		return err
	}
	defer closeSender()

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	budgetReadRepo := repositories.NewBudgetReadRepository(db)
	budgetWriteRepo := repositories.NewBudgetWriteRepository(db, middlewares.GetTxFromContext)
	resetTokenRepo := repositories.NewResetTokenRepository(rdb, time.Duration(cfg.ResetTokenExpSecond)*time.Second)
	summaryCacheRepo := repositories.NewSummaryCacheRepository(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, resetTokenRepo, sender, cfg.MailFrom)
	budgetService := services.NewBudgetService(budgetReadRepo, budgetWriteRepo, userReadRepo, userWriteRepo, summaryCacheRepo, budgetEvents, middlewares.AfterCommit)
	summaryService := services.NewSummaryService(budgetReadRepo, userReadRepo, summaryCacheRepo)

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)

	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: newRouter(routerDeps{
			db:             db,
			tokener:        tokens,
			authService:    authService,
			budgetService:  budgetService,
			summaryService: summaryService,
			allowedOrigins: cfg.CORSAllowedOrigins,
		}),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		// WriteMessages blocks until its batch is flushed.
		BatchTimeout: kafkaBatchTimeout,
	}
}

// newMailSender builds the message channel selected by MAILER_BACKEND.
// The returned close function is always non-nil.
func newMailSender(cfg *config) (services.MessageSender, func(), error) {
	switch cfg.MailerBackend {
	case mailer.BackendKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, nil, errors.New("MAILER_BACKEND=kafka requires KAFKA_BROKERS")
		}
		w := newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaMailTopic)
		logger.Log.Infow("Sending mail through Kafka", "topic", cfg.KafkaMailTopic)
		return mailer.NewKafkaSender(w), func() { _ = w.Close() }, nil
	case mailer.BackendAMQP:
		s, err := mailer.NewAMQPSender(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to AMQP: %w", err)
		}
		logger.Log.Infow("Sending mail through AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		return s, func() { _ = s.Close() }, nil
	case mailer.BackendLog:
		logger.Log.Info("Mail is written to the log")
		return mailer.NewLogSender(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown MAILER_BACKEND %q", cfg.MailerBackend)
	}
}
