package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/handlers/movement/v1alpha1"
	"github.com/Toakan-Network/RW-MassAffect/internal/handlers/movement/watch"
	"github.com/Toakan-Network/RW-MassAffect/internal/orchestrators/movement"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/clock"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/idgen"
	"github.com/Toakan-Network/RW-MassAffect/internal/redis"
	pawnrepo "github.com/Toakan-Network/RW-MassAffect/internal/repositories/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/tuning"
)

type serverOptions struct {
	grpcPort         int
	redisAddr        string
	redisTLS         bool
	tuningPath       string
	providerName     string
	watchAddr        string
	allowRemoteWatch bool
}

var opts serverOptions

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the move cost gRPC server. Pawn snapshots are kept in Redis when
--redis-addr is set and in process memory otherwise.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&opts.grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for pawn snapshots (empty keeps them in memory)")
	serverCmd.Flags().BoolVar(&opts.redisTLS, "redis-tls", false, "Connect to Redis over TLS")
	serverCmd.Flags().StringVar(&opts.tuningPath, "tuning", "", "YAML tuning file overriding formula constants")
	serverCmd.Flags().StringVar(&opts.providerName, "provider", movecost.ProviderMass,
		fmt.Sprintf("Primary move cost provider %v", movecost.ProviderNames()))
	serverCmd.Flags().StringVar(&opts.watchAddr, "watch-addr", "127.0.0.1:8081", "Address for the websocket watch stream (empty disables it)")
	serverCmd.Flags().BoolVar(&opts.allowRemoteWatch, "watch-allow-remote", false, "Accept watch observers from non-loopback addresses")
}

// app is the wired service graph behind the transports
type app struct {
	handler *v1alpha1.Handler
	hub     *watch.Hub
	closers []func() error
}

func newApp(ctx context.Context, o serverOptions) (*app, error) {
	tune, err := tuning.Load(o.tuningPath)
	if err != nil {
		return nil, err
	}

	mcfg := &movecost.Config{Tuning: tune.Movement}
	provider, err := movecost.NewProvider(o.providerName, mcfg)
	if err != nil {
		return nil, err
	}
	fallback, err := movecost.NewBaseline(mcfg)
	if err != nil {
		return nil, err
	}

	a := &app{}

	var repo pawnrepo.Repository
	if o.redisAddr == "" {
		slog.Info("pawn snapshots kept in memory")
		repo = pawnrepo.NewInMemory(nil)
	} else {
		client, err := redis.NewClient(o.redisAddr, &redis.Options{UseTLS: o.redisTLS})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			_ = a.close()
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis at %s is unreachable", o.redisAddr)
		}

		repo, err = pawnrepo.NewRedis(&pawnrepo.RedisConfig{Client: client})
		if err != nil {
			_ = a.close()
			return nil, err
		}
		slog.Info("pawn snapshots kept in redis", "addr", o.redisAddr)
	}

	bus := events.NewBus()

	svc, err := movement.NewOrchestrator(&movement.Config{
		PawnRepo:    repo,
		Provider:    provider,
		Fallback:    fallback,
		EventBus:    bus,
		IDGenerator: idgen.NewUUID("move"),
		Clock:       clock.New(),
	})
	if err != nil {
		_ = a.close()
		return nil, err
	}

	a.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{MovementService: svc})
	if err != nil {
		_ = a.close()
		return nil, err
	}

	a.hub, err = watch.NewHub(&watch.Config{EventBus: bus, AllowRemote: o.allowRemoteWatch})
	if err != nil {
		_ = a.close()
		return nil, err
	}
	a.closers = append(a.closers, a.hub.Close)

	slog.Info("move cost providers ready",
		"primary", provider.Name(),
		"fallback", fallback.Name(),
		"tuning", o.tuningPath,
	)

	return a, nil
}

// close runs closers in reverse order and returns the first error
func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			slog.Warn("failed to release resources", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterMoveCostServiceServer(srv, a.handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", opts.grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	var watchSrv *http.Server
	if opts.watchAddr != "" {
		mux := http.NewServeMux()
		mux.Handle(watch.Path, a.hub.Handler())
		watchSrv = &http.Server{
			Addr:              opts.watchAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("watch stream starting", "addr", opts.watchAddr, "path", watch.Path)
			if err := watchSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("failed to serve watch stream: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")

		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if watchSrv != nil {
			// Hijacked websocket connections are not tracked by Shutdown;
			// closing the hub ends them.
			_ = a.hub.Close()
			if err := watchSrv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("watch stream shutdown failed", "error", err)
			}
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		srv.Stop()
		if watchSrv != nil {
			_ = watchSrv.Close()
		}
		return err
	}
}

// logFunc adapts the interceptor logger to slog; middleware levels share
// slog's numeric values.
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
