// Command scamalystd serves the scam, AI-text and website analyzers over
// HTTP and gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/naomili-code/scamalyst/internal/application/usecase"
	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/internal/domain/service"
	"github.com/naomili-code/scamalyst/internal/infrastructure/config"
	"github.com/naomili-code/scamalyst/internal/infrastructure/inference"
	"github.com/naomili-code/scamalyst/internal/infrastructure/messaging"
	grpcpresentation "github.com/naomili-code/scamalyst/internal/presentation/grpc"
	"github.com/naomili-code/scamalyst/internal/presentation/rest"
	"github.com/naomili-code/scamalyst/pkg/auth"
	pkgkafka "github.com/naomili-code/scamalyst/pkg/kafka"
	"github.com/naomili-code/scamalyst/pkg/observability"
	"github.com/naomili-code/scamalyst/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("scamalystd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "scamalystd",
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting scamalystd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"auth", cfg.Auth.Enabled(),
		"tls", cfg.TLS.Enabled(),
	)

	tracerProvider, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without export", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tracerProvider.Shutdown(shutdownCtx)
		}()
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	otel.SetMeterProvider(meterProvider)
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	metrics, err := observability.NewAnalysisMetrics(meterProvider.Meter("github.com/naomili-code/scamalyst"))
	if err != nil {
		return fmt.Errorf("init analysis metrics: %w", err)
	}

	// Event publishing: Kafka when brokers are configured, the log otherwise.
	checks := map[string]rest.ReadinessCheck{}
	var publisher port.EventPublisher
	kafkaCfg := cfg.Kafka.Client()
	if kafkaCfg.Enabled() {
		producer, err := pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("init kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close", "error", err)
			}
		}()
		publisher = messaging.NewKafkaPublisher(producer, cfg.Kafka.Topic, logger)
		checks["kafka"] = func(ctx context.Context) error { return pkgkafka.Ping(ctx, kafkaCfg) }
		logger.Info("publishing analysis events to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewLogPublisher(logger)
	}

	var inferenceClient port.InferenceClient
	if cfg.Inference.Stub {
		logger.Warn("inference stub enabled, upstream model is never called")
		inferenceClient = inference.NewStubClient()
	} else {
		if cfg.Inference.APIKey == "" {
			logger.Warn("HF_KEY not set, the inference relay will refuse requests")
		}
		inferenceClient = inference.NewHuggingFaceClient(cfg.Inference.APIKey, cfg.Inference.BaseURL, cfg.Inference.Timeout)
	}

	jwtService, err := newJWTService(cfg.Auth)
	if err != nil {
		return err
	}

	// Use cases.
	analyzeMessage := usecase.NewAnalyzeMessage(
		service.NewMessageScorer(), service.NewScamTypeClassifier(), publisher, metrics, logger)
	if model := cfg.Inference.EnrichmentModel(); model != "" {
		analyzeMessage.WithEnrichment(inferenceClient, model, cfg.Inference.Timeout)
		logger.Info("message enrichment enabled", "model", model)
	}
	detectAI := usecase.NewDetectAI(service.NewAIDetector(), publisher, metrics, logger)
	analyzeWebsite := usecase.NewAnalyzeWebsite(service.NewWebsiteScorer(), publisher, metrics, logger)
	relay := usecase.NewRelayInference(inferenceClient, metrics, logger)

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Metrics:     metricsHandler,
		JWT:         jwtService,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
		RateWindow:  cfg.RateWindow,
		MaxBodySize: cfg.MaxBodySize,
	},
		rest.NewAnalysisHandler(analyzeMessage, detectAI, analyzeWebsite, relay, logger),
		rest.NewHealthHandler(logger, checks),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// The relay may wait on the upstream for the full inference timeout.
		WriteTimeout: cfg.Inference.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if cfg.TLS.Enabled() {
		tlsCfg, err := tlsutil.ServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return fmt.Errorf("load HTTP TLS config: %w", err)
		}
		httpServer.TLSConfig = tlsCfg
	}

	// gRPC server. Port 0 disables it.
	var grpcServer *grpcpresentation.Server
	if cfg.GRPCPort > 0 {
		grpcServer, err = grpcpresentation.NewServer(
			grpcpresentation.NewAnalyzerHandler(analyzeMessage, detectAI, analyzeWebsite, logger),
			grpcpresentation.ServerConfig{
				JWT:            jwtService,
				TLSCertFile:    cfg.TLS.CertFile,
				TLSKeyFile:     cfg.TLS.KeyFile,
				Reflection:     cfg.Reflection,
				MaxRecvMsgSize: int(cfg.MaxBodySize),
			},
			logger,
		)
		if err != nil {
			return err
		}
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		var err error
		if cfg.TLS.Enabled() {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Serve(cfg.GRPCAddress()); err != nil {
				errCh <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down scamalystd")

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	// In-flight enrichment still publishes before the producer closes.
	analyzeMessage.Wait()

	logger.Info("scamalystd stopped")
	return runErr
}

// newJWTService returns nil when auth is disabled.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	jwtCfg := auth.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.Issuer}
	if cfg.JWTPublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("init JWT service: %w", err)
	}
	return svc, nil
}
