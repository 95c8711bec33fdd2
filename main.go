package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sportshop/internal/auth"
	"sportshop/internal/config"
	"sportshop/internal/repositories"
	"sportshop/internal/server"
	"sportshop/internal/services"
	"sportshop/pkg/cache"
	"sportshop/pkg/filestore"
	"sportshop/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	configureLogging(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// --- Storage ---
	store, err := openStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open store")
	}

	// --- Product list cache ---
	var productCache cache.Cache = cache.Noop{}
	var redisCache *cache.Redis
	if cfg.RedisAddr != "" {
		redisCache, err = cache.NewRedis(ctx, cache.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			// The catalog still works uncached.
			logrus.WithError(err).Warn("redis unavailable, product cache disabled")
		} else {
			productCache = redisCache
		}
	}

	// --- Order events ---
	// events stays a nil interface when RabbitMQ is off; the order service
	// skips publishing then.
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logrus.WithError(err).Warn("rabbitmq unavailable, order events disabled")
		} else {
			events = mqClient
			if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
				logrus.WithError(err).Error("failed to start order event consumer")
			}
		}
	}

	// --- Image storage ---
	files, uploadDir, err := openFileStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to set up image storage")
	}

	// --- Auth core and services ---
	tokens, err := auth.NewTokenService(cfg.JWTSecret, auth.WithTTL(cfg.JWTTTL))
	if err != nil {
		logrus.WithError(err).Fatal("failed to set up token service")
	}

	app := server.New(server.Deps{
		Gate:         auth.NewGate(tokens, store.Users),
		Users:        services.NewUserService(store.Users, auth.NewHasher(cfg.BcryptCost), tokens),
		Products:     services.NewProductService(store.Products, productCache, cfg.CacheTTL, files),
		Carts:        services.NewCartService(store.Carts, store.Products),
		Orders:       services.NewOrderService(store.Orders, store.Products, events),
		UploadDir:    uploadDir,
		ExposeErrors: !cfg.IsProduction(),
		RequestLog:   true,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "env": cfg.AppEnv, "db": cfg.DBDriver}).Info("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			logrus.WithError(err).Fatal("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logrus.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logrus.WithError(err).Error("error during fiber shutdown")
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if err := store.Close(closeCtx); err != nil {
		logrus.WithError(err).Error("failed to close store")
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logrus.WithError(err).Error("failed to close rabbitmq client")
		}
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			logrus.WithError(err).Error("failed to close redis client")
		}
	}
	logrus.Info("server gracefully stopped")
}

// configureLogging uses text output in development and JSON elsewhere.
func configureLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func openStore(ctx context.Context, cfg *config.Config) (*repositories.Store, error) {
	if cfg.DBDriver == config.DriverMongo {
		client, db, err := repositories.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return repositories.NewMongoStore(client, db), nil
	}

	db, err := repositories.OpenGORM(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	return repositories.NewGORMStore(db), nil
}

// openFileStore returns the image store and, for the local disk store, the
// directory to serve at /uploads.
func openFileStore(cfg *config.Config) (filestore.FileStore, string, error) {
	if cfg.CloudinaryEnabled() {
		cld, err := filestore.NewCloudinary(filestore.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		})
		if err != nil {
			return nil, "", err
		}
		return cld, "", nil
	}

	if cfg.UploadDir == "" {
		return nil, "", errors.New("UPLOAD_DIR is empty and Cloudinary is not configured")
	}
	local, err := filestore.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("upload dir %s: %w", cfg.UploadDir, err)
	}
	return local, local.Dir(), nil
}
