package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	appservice "inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/infrastructure/audit"
	"inventory/pkg/inventory/infrastructure/observability"
	"inventory/pkg/inventory/infrastructure/transport"
)

func serviceCommand() *cli.Command {
	return &cli.Command{
		Name:  "service",
		Usage: "serve the inventory HTTP API and gRPC health checks",
		Action: func(c *cli.Context) error {
			cfg, err := parseEnv()
			if err != nil {
				return err
			}
			return runService(c.Context, cfg)
		},
	}
}

func runService(ctx context.Context, c *config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		ServiceName:    appID,
		ServiceVersion: appVersion,
		Endpoint:       c.OTLPEndpoint,
		Insecure:       c.OTLPInsecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Error("failed to flush traces")
		}
	}()

	store, err := openStorage(ctx, c)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			log.WithError(err).Error("failed to close storage")
		}
	}()

	publisher, err := openPublisher(c)
	if err != nil {
		return err
	}
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				log.WithError(err).Error("failed to close audit publisher")
			}
		}()
	}
	recorder := audit.NewRecorder(store.AuditRepository(), publisher)

	router := transport.Router(transport.Services{
		Products: appservice.NewProductService(store, recorder),
		Recipes:  appservice.NewRecipeService(store, recorder),
		Waste:    appservice.NewWasteService(store, recorder),
		Sales:    appservice.NewSalesService(store.SaleRepository()),
		Audit:    appservice.NewAuditService(store.AuditRepository()),
		Health:   store.health,
	})
	httpServer := &http.Server{
		Addr:              c.ServeHTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(appID, grpc_health_v1.HealthCheckResponse_SERVING)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.WithField("address", c.ServeHTTPAddress).Info("starting http server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	group.Go(func() error {
		listener, err := net.Listen("tcp", c.ServeGRPCAddress)
		if err != nil {
			return errors.Wrap(err, "listen grpc")
		}
		log.WithField("address", c.ServeGRPCAddress).Info("starting grpc health server")
		return grpcServer.Serve(listener)
	})
	group.Go(func() error {
		watchHealth(ctx, c.HealthCheckInterval, store.health, healthServer)
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	return group.Wait()
}

// watchHealth mirrors the catalog store reachability into the gRPC health status.
func watchHealth(ctx context.Context, interval time.Duration, check func(ctx context.Context) error, server *health.Server) {
	if check == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status := grpc_health_v1.HealthCheckResponse_SERVING
			if err := check(ctx); err != nil {
				log.WithError(err).Warn("catalog store health check failed")
				status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			}
			server.SetServingStatus(appID, status)
		}
	}
}
