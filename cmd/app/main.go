package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/web-client/internal/api"
	"github.com/BloggingApp/web-client/internal/auth"
	"github.com/BloggingApp/web-client/internal/config"
	"github.com/BloggingApp/web-client/internal/handler"
	"github.com/BloggingApp/web-client/internal/repository"
	"github.com/BloggingApp/web-client/internal/server"
	"github.com/BloggingApp/web-client/internal/service"
	"github.com/BloggingApp/web-client/internal/session"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}
	cfg := config.Load()

	if cfg.Tracing.Endpoint != "" {
		shutdown, err := initOTEL(ctx, cfg.Tracing)
		if err != nil {
			logger.Sugar().Panicf("failed to initialize tracing: %s", err.Error())
		}
		defer func() {
			c, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := shutdown(c); err != nil {
				logger.Sugar().Errorf("failed to flush traces: %s", err.Error())
			}
		}()
		logger.Sugar().Infof("Exporting traces to %s", cfg.Tracing.Endpoint)
	}

	var repos *repository.Repository
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)
		repos = repository.New(rdb)
	} else {
		logger.Warn("REDIS_ADDR is not set, keeping session tokens in memory")
		repos = repository.NewInMemory()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := api.New(cfg.API, api.WithMetrics(api.NewMetrics(reg)))
	manager := auth.NewManager(logger, repos.Token, cfg.Session.TTL)
	services := service.New(client, cfg.Thread, cfg.Composer)
	sessions := session.NewStore(services, manager, cfg.Session)

	handlers := handler.New(logger, sessions, manager, handler.Options{
		AuthURL:            client.AuthURL(),
		ClientOrigin:       cfg.ClientOrigin,
		DefaultPostID:      cfg.DefaultPostID,
		CookieName:         cfg.Session.CookieName,
		CookieTTL:          cfg.Session.TTL,
		CookieSecure:       cfg.Session.Secure,
		MaxAttachmentBytes: cfg.Composer.MaxAttachmentBytes,
		Metrics:            promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := server.New(config.ServerConfig{
		Port:           cfg.Port,
		Handler:        otelhttp.NewHandler(handlers.InitRoutes(), "web"),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 30,
		WriteTimeout:   time.Second * 30,
	})
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	logger.Sugar().Infof("Server started on port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

// loadEnv tolerates a missing .env file; secrets may come from the
// environment directly.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func initConfig() error {
	config.SetDefaults()
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}

func initOTEL(ctx context.Context, cfg config.TracingConfig) (func(context.Context) error, error) {
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}
