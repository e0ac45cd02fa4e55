// Package server wires the auth service together: configuration, logging,
// the directory backend, the secret resolver, and the HTTP endpoint. It
// also owns graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/brianXcode/tezda-auth-service/internal/logging"
	"github.com/brianXcode/tezda-auth-service/internal/server/auth"
	"github.com/brianXcode/tezda-auth-service/internal/server/config"
	"github.com/brianXcode/tezda-auth-service/internal/server/directory"
	"github.com/brianXcode/tezda-auth-service/internal/server/hashing"
	"github.com/brianXcode/tezda-auth-service/internal/server/httpapi"
	"github.com/brianXcode/tezda-auth-service/internal/server/migrations"
	"github.com/brianXcode/tezda-auth-service/internal/server/secrets"
	"github.com/brianXcode/tezda-auth-service/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	hasher, err := hashing.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	smClient := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.AWSBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSBaseEndpoint)
		}
	})
	resolver := secrets.NewResolver(smClient, os.LookupEnv, logger)
	issuer := auth.NewIssuer(resolver, cfg.SecretName, cfg.SecretEnvFallback, cfg.TokenValidityDuration, logger)

	dir, err := newDirectory(ctx, cfg, awsCfg)
	if err != nil {
		return nil, fmt.Errorf("directory init error: %w", err)
	}

	authService := services.NewAuthService(dir, hasher, issuer, logger)
	httpServer := httpapi.NewServer(cfg.EndpointAddrHTTP, authService, logger)

	return &App{config: cfg, logger: logger, httpServer: httpServer}, nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	// Static credentials are only set for local stacks (dynamodb-local,
	// localstack); in real deployments the default chain applies.
	if cfg.AWSAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, "")))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

func newDirectory(ctx context.Context, cfg *config.Config, awsCfg aws.Config) (directory.Directory, error) {
	switch cfg.StorageBackend {
	case config.BackendDynamo:
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.AWSBaseEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWSBaseEndpoint)
			}
		})
		return directory.NewDynamo(client, cfg.UsersTable, cfg.EmailIndex), nil

	case config.BackendPostgres:
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := migrations.Up(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		return directory.NewPostgres(db), nil

	case config.BackendMemory:
		return directory.NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
