package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dilipkumar2k6/uuid-generation/internal/config"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/closer"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/safe/errorgroup"
	"github.com/dilipkumar2k6/uuid-generation/internal/core/tcp"
	coretime "github.com/dilipkumar2k6/uuid-generation/internal/core/time"
	"github.com/dilipkumar2k6/uuid-generation/internal/idgen"
	"github.com/dilipkumar2k6/uuid-generation/internal/logging"
	"github.com/dilipkumar2k6/uuid-generation/internal/metrics"
	"github.com/dilipkumar2k6/uuid-generation/internal/pprofx"
	"github.com/dilipkumar2k6/uuid-generation/internal/tracing"
	"github.com/dilipkumar2k6/uuid-generation/internal/transport"
)

func main() {
	if err := run(); err != nil {
		logging.Default().Error("idsidecar exited", logging.ErrAttr(err))
		os.Exit(1)
	}
}

func run() error {
	startedAt := time.Now()
	cfg := config.FromEnv()

	log := logging.NewLogger(
		logging.WithLevel(cfg.LogLevel),
		logging.WithIsJSON(cfg.LogFormat == "json"),
		logging.WithSetDefault(true),
	)
	log.Info("starting idsidecar", logging.StringAttr("generator_type", string(cfg.GeneratorType)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.New(
		tracing.WithHost(cfg.OTLPHost),
		tracing.WithPort(cfg.OTLPPort),
		tracing.WithServiceName(cfg.ServiceName),
		tracing.WithServiceVersion(cfg.ServiceVersion),
		tracing.WithEnvName(cfg.DeploymentEnv),
	)
	if err != nil {
		return fmt.Errorf("idsidecar: init tracing: %w", err)
	}

	lc := closer.NewLIFOCloser()
	if shutdowner, ok := tp.(interface{ Shutdown(context.Context) error }); ok {
		lc.Add(closer.CloserFunc(func() error { return shutdowner.Shutdown(context.Background()) }))
	}

	gen, err := idgen.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("idsidecar: init generator: %w", err)
	}
	if c, ok := gen.(interface{ Close() error }); ok {
		lc.Add(c)
	}

	var tcpOpts []tcp.ServerOption
	if cfg.TCPCertFile != "" && cfg.TCPKeyFile != "" {
		tlsConfig, err := tcp.ServerTLSConfig(cfg.TCPCertFile, cfg.TCPKeyFile)
		if err != nil {
			return fmt.Errorf("idsidecar: load tcp tls config: %w", err)
		}
		tcpOpts = append(tcpOpts, tcp.WithServerTLS(tlsConfig))
	}

	idServer, err := transport.NewIDServer(cfg.TCPAddr(), gen, tcpOpts...)
	if err != nil {
		return fmt.Errorf("idsidecar: init tcp server: %w", err)
	}
	lc.Add(idServer)

	metricsServer, err := metrics.NewServer(metrics.NewConfig(
		metrics.WithHost(cfg.MetricsHost),
		metrics.WithPort(cfg.MetricsPort),
	))
	if err != nil {
		return fmt.Errorf("idsidecar: init metrics server: %w", err)
	}
	lc.Add(metricsServer)

	pprofServer := pprofx.NewServer(pprofx.NewConfig(cfg.PprofHost, cfg.PprofPort, config.ReadTimeoutDefault))
	lc.Add(pprofServer)

	group, groupCtx := errorgroup.WithContext(ctx)

	group.Go(func(ctx context.Context) error {
		return idServer.Run(ctx)
	})
	group.Go(func(ctx context.Context) error {
		return metricsServer.Run(ctx)
	})
	group.Go(func(ctx context.Context) error {
		return pprofServer.Run(ctx)
	})

	log.Info("idsidecar ready", logging.StringAttr("startup_time", coretime.FormatDuration(time.Since(startedAt))))

	<-groupCtx.Done()
	log.Info("shutdown signal received, closing resources")
	closeErr := lc.Close()

	if err := group.Wait(); err != nil {
		log.Warn("service goroutine returned error during shutdown", logging.ErrAttr(err))
	}
	return closeErr
}
