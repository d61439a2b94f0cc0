package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/homesteadhq/homestead-api/internal/clients/catalog"
	"github.com/homesteadhq/homestead-api/internal/errors"
	"github.com/homesteadhq/homestead-api/internal/orchestrators/economy"
	"github.com/homesteadhq/homestead-api/internal/orchestrators/placement"
	"github.com/homesteadhq/homestead-api/internal/orchestrators/worldmap"
	"github.com/homesteadhq/homestead-api/internal/pkg/clock"
	"github.com/homesteadhq/homestead-api/internal/pkg/idgen"
	"github.com/homesteadhq/homestead-api/internal/redis"
	"github.com/homesteadhq/homestead-api/internal/repositories/account"
	"github.com/homesteadhq/homestead-api/internal/repositories/gamemap"
	placementrepo "github.com/homesteadhq/homestead-api/internal/repositories/placement"
)

var (
	grpcPort  int
	redisAddr string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the homestead gRPC server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address")
}

// services bundles the wired orchestrators behind their interfaces.
type services struct {
	Engine   placement.Service
	Economy  economy.Service
	Worldmap worldmap.Service
}

func buildServices(redisClient redis.Client) (*services, error) {
	catalogClient := catalog.NewRedisClient(redisClient)
	accountRepo := account.NewRedisRepository(redisClient)
	mapRepo := gamemap.NewRedisRepository(redisClient)
	placementRepository := placementrepo.NewRedisRepository(redisClient)

	idGen := idgen.NewUUID("plc")
	clk := clock.New()

	engine, err := placement.NewOrchestrator(&placement.Config{
		MapRepo:       mapRepo,
		PlacementRepo: placementRepository,
		IDGenerator:   idGen,
		Clock:         clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create placement engine: %w", err)
	}

	economySvc, err := economy.NewOrchestrator(&economy.Config{
		Engine:        engine,
		Catalog:       catalogClient,
		AccountRepo:   accountRepo,
		MapRepo:       mapRepo,
		PlacementRepo: placementRepository,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create economy service: %w", err)
	}

	worldmapSvc, err := worldmap.NewOrchestrator(&worldmap.Config{
		MapRepo:       mapRepo,
		PlacementRepo: placementRepository,
		Catalog:       catalogClient,
		IDGenerator:   idgen.NewUUID("map"),
		Clock:         clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create worldmap service: %w", err)
	}

	return &services{
		Engine:   engine,
		Economy:  economySvc,
		Worldmap: worldmapSvc,
	}, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	redisClient, err := redis.NewClient(redisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	svcs, err := buildServices(redisClient)
	if err != nil {
		return err
	}
	// TODO: register transport handlers for svcs once the proto API surface
	// is published; until then the server exposes health and reflection only.
	slog.Info("Services wired",
		"engine", svcs.Engine != nil,
		"economy", svcs.Economy != nil,
		"worldmap", svcs.Worldmap != nil,
	)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
			errorMappingUnaryInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
			errorMappingStreamInterceptor,
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// errorMappingUnaryInterceptor converts coded domain errors into gRPC
// status errors so handlers never leak raw storage errors to clients.
func errorMappingUnaryInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return resp, errors.ToGRPCError(err)
	}
	return resp, nil
}

func errorMappingStreamInterceptor(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if err := handler(srv, ss); err != nil {
		return errors.ToGRPCError(err)
	}
	return nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	switch level {
	case grpc_logging.LevelDebug:
		slog.DebugContext(ctx, msg, fields...)
	case grpc_logging.LevelWarn:
		slog.WarnContext(ctx, msg, fields...)
	case grpc_logging.LevelError:
		slog.ErrorContext(ctx, msg, fields...)
	default:
		slog.InfoContext(ctx, msg, fields...)
	}
}
