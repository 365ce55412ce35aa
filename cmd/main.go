package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	goredislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fund-agent/handler"
	"fund-agent/internal/config"
	"fund-agent/internal/integrations/paramstore"
	"fund-agent/internal/lock"
	"fund-agent/internal/refdata"
	"fund-agent/internal/repository"
	"fund-agent/internal/usecase"
)

func main() {
	ctx := context.Background()

	// A local .env is optional; Lambda gets its environment from the function config.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// ---- Reference data ----
	source, err := newSource(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create dataset source", zap.String("data_source", cfg.DataSource), zap.Error(err))
	}
	gateway, err := refdata.NewGateway(source)
	if err != nil {
		logger.Fatal("failed to create reference data gateway", zap.Error(err))
	}

	// ---- Turn serialization ----
	locker, closeLocker, err := newLocker(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create conversation locker", zap.String("lock_backend", cfg.LockBackend), zap.Error(err))
	}
	defer closeLocker()

	// ---- Intents ----
	names, err := config.LoadIntentNames(cfg.IntentsFile)
	if err != nil {
		logger.Fatal("failed to load intent names", zap.Error(err))
	}
	if names == nil {
		names = usecase.DefaultIntentNames()
	}
	intents, err := usecase.NewIntentTable(names)
	if err != nil {
		logger.Fatal("invalid intent table", zap.Error(err))
	}

	// ---- Handler ----
	svc, err := usecase.NewService(gateway, locker, intents, logger.Named("usecase"))
	if err != nil {
		logger.Fatal("failed to create fulfillment service", zap.Error(err))
	}
	h, err := handler.NewHandler(svc, logger.Named("handler"))
	if err != nil {
		logger.Fatal("failed to create handler", zap.Error(err))
	}

	logger.Info("starting fulfillment backend",
		zap.String("runtime", cfg.Runtime),
		zap.String("data_source", cfg.DataSource),
		zap.String("lock_backend", cfg.LockBackend),
	)

	if cfg.Runtime == config.RuntimeHTTP {
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server stopped", zap.Error(err))
		}
		return
	}
	lambda.Start(h.Handle)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func newSource(ctx context.Context, cfg *config.Config) (refdata.Source, error) {
	if cfg.DataSource == config.SourceFile {
		return refdata.NewFileSource(cfg.DataDir)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	switch cfg.DataSource {
	case config.SourceSSM:
		return paramstore.New(awsssm.NewFromConfig(awsCfg), cfg.ParamPrefix)
	case config.SourceDynamoDB:
		return repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.DatasetTable)
	default:
		return nil, fmt.Errorf("unsupported data source %q", cfg.DataSource)
	}
}

func newLocker(cfg *config.Config, logger *zap.Logger) (usecase.Locker, func(), error) {
	if cfg.LockBackend != config.LockRedis {
		return lock.NewLocal(), func() {}, nil
	}

	opts, err := goredislib.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := goredislib.NewClient(opts)

	lockOpts := lock.DefaultOptions()
	lockOpts.Expiry = cfg.LockExpiry
	lockOpts.Tries = cfg.LockTries
	locker, err := lock.NewRedis(client, lockOpts, logger.Named("lock"))
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return locker, func() { _ = client.Close() }, nil
}
