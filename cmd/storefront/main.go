package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/config"
	"storefront/internal/clients"
	"storefront/internal/delivery"
	grpcHandler "storefront/internal/delivery/grpc"
	"storefront/internal/session"
	"storefront/internal/usecase"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatalf("FATAL: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting Storefront...")
	logger.Infof("Shop API target: %s", cfg.APIURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shopClient := clients.NewShopHTTPClient(cfg.APIURL, cfg.RequestTimeout, clients.RetryPolicy{
		MaxRetries: cfg.FetchRetries,
	}, logger)
	logger.Infof("Shop API client initialized (timeout %s, retries %d)", cfg.RequestTimeout, cfg.FetchRetries)

	sessions := session.NewRegistry(cfg.SessionTTL, logger).WithDefaultCustomer(cfg.DefaultCustomerName)
	sweepInterval := time.Minute
	if cfg.SessionTTL < sweepInterval {
		sweepInterval = cfg.SessionTTL
	}
	go sessions.Run(ctx, sweepInterval)

	// --- Dependency Injection ---
	pageLoader := usecase.NewPageLoader(shopClient, logger)
	orderSubmitter := usecase.NewOrderSubmitter(shopClient, logger)
	logger.Info("Use cases initialized.")

	storefrontHandler := delivery.NewStorefrontHandler(ctx, sessions, pageLoader, orderSubmitter, delivery.HandlerOptions{
		ClearBasketOnOrder: cfg.ClearBasketOnOrder,
		SessionTTL:         cfg.SessionTTL,
	}, logger)
	logger.Info("Handlers initialized.")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), delivery.RequestLogger(logger))
	router.SetHTMLTemplate(delivery.PageTemplate())

	storefrontHandler.RegisterRoutes(router)
	logger.Info("Routes registered.")

	var healthServer *grpcHandler.HealthServer
	if cfg.GrpcHealthPort != "" {
		lis, err := net.Listen("tcp", cfg.GrpcHealthPort)
		if err != nil {
			logger.Fatalf("Failed to listen on gRPC health port %s: %v", cfg.GrpcHealthPort, err)
		}
		healthServer = grpcHandler.NewHealthServer(logger)
		go func() {
			if err := healthServer.Serve(lis); err != nil {
				stop()
			}
		}()
	}

	// --- Start Server ---
	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Storefront listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Warn("Shutdown signal received...")
	case err := <-serverErr:
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		stop()
	}

	if healthServer != nil {
		healthServer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}
	logger.Info("Storefront stopped.")
}
