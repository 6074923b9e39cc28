package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/naomili-code/scamalyst/internal/application/usecase"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/domain/service"
	"github.com/naomili-code/scamalyst/internal/infrastructure/messaging"
	"github.com/naomili-code/scamalyst/pkg/auth"
	"github.com/naomili-code/scamalyst/pkg/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler() *AnalyzerHandler {
	logger := testLogger()
	publisher := messaging.NewLogPublisher(logger)
	return NewAnalyzerHandler(
		usecase.NewAnalyzeMessage(service.NewMessageScorer(), service.NewScamTypeClassifier(), publisher, nil, logger),
		usecase.NewDetectAI(service.NewAIDetector(), publisher, nil, logger),
		usecase.NewAnalyzeWebsite(service.NewWebsiteScorer(), publisher, nil, logger),
		logger,
	)
}

// startServer serves on an in-memory listener and returns a connected client.
func startServer(t *testing.T, cfg ServerConfig) *grpclib.ClientConn {
	t.Helper()
	srv, err := NewServer(newTestHandler(), cfg, testLogger())
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.ServeListener(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func invoke(ctx context.Context, conn *grpclib.ClientConn, method string, req, resp any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return conn.Invoke(ctx, method, req, resp, grpclib.CallContentSubtype(CodecName))
}

func TestAnalyzeMessage(t *testing.T) {
	conn := startServer(t, ServerConfig{})

	var resp MessageAnalysis
	err := invoke(context.Background(), conn, MethodAnalyzeMessage, &AnalyzeTextRequest{Text: rules.ExampleMessage}, &resp)

	require.NoError(t, err)
	assert.Equal(t, 8.0, resp.Score)
	assert.Equal(t, int32(80), resp.MeterPercent)
	assert.Equal(t, "Likely Scam", resp.Verdict)
	require.NotNil(t, resp.ScamType)
	assert.Equal(t, "phishing", resp.ScamType.Type)
	assert.Len(t, resp.SafetyActions, 3)
	assert.NotEmpty(t, resp.ID)
}

func TestDetectAI(t *testing.T) {
	conn := startServer(t, ServerConfig{})

	var resp AIAnalysis
	err := invoke(context.Background(), conn, MethodDetectAI, &AnalyzeTextRequest{Text: testutil.AIParagraph}, &resp)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, resp.Score, 0.0)
	assert.LessOrEqual(t, resp.Score, 1.0)
	assert.NotEmpty(t, resp.Reasons)
}

func TestAnalyzeWebsite(t *testing.T) {
	conn := startServer(t, ServerConfig{})

	var resp WebsiteAnalysis
	err := invoke(context.Background(), conn, MethodAnalyzeWebsite, &AnalyzeWebsiteRequest{Input: testutil.LookalikeURL}, &resp)

	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.Score)
	assert.Equal(t, "Medium Risk", resp.Verdict)
	assert.Equal(t, "url", resp.Mode)
	require.Len(t, resp.RedFlags, 2)
	assert.Equal(t, "Security", resp.RedFlags[0].Category)
}

func TestHealthCheck(t *testing.T) {
	conn := startServer(t, ServerConfig{})

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: analyzerServiceName})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestAuth(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "grpc-test-secret", Issuer: "scamalyst"})
	require.NoError(t, err)
	conn := startServer(t, ServerConfig{JWT: jwtSvc})

	withToken := func(roles ...string) context.Context {
		token, err := jwtSvc.GenerateToken("grpc-client", roles)
		require.NoError(t, err)
		return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
	}

	tests := []struct {
		name string
		ctx  context.Context
		want codes.Code
	}{
		{"no token", context.Background(), codes.Unauthenticated},
		{"analyst", withToken(auth.RoleAnalyst), codes.OK},
		{"admin", withToken(auth.RoleAdmin), codes.OK},
		{"inference only", withToken(auth.RoleInference), codes.PermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp AIAnalysis
			err := invoke(tt.ctx, conn, MethodDetectAI, &AnalyzeTextRequest{Text: "hello"}, &resp)
			assert.Equal(t, tt.want, status.Code(err))
		})
	}

	// health stays open without a token
	_, err = healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	assert.NoError(t, err)
}

func TestAuth_Streams(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "grpc-test-secret", Issuer: "scamalyst"})
	require.NoError(t, err)
	conn := startServer(t, ServerConfig{JWT: jwtSvc, Reflection: true})

	listServices := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		stream, err := reflectionpb.NewServerReflectionClient(conn).ServerReflectionInfo(ctx)
		if err != nil {
			return err
		}
		if err := stream.Send(&reflectionpb.ServerReflectionRequest{
			MessageRequest: &reflectionpb.ServerReflectionRequest_ListServices{ListServices: "*"},
		}); err != nil && err != io.EOF {
			return err
		}
		_, err = stream.Recv()
		return err
	}

	assert.Equal(t, codes.Unauthenticated, status.Code(listServices(context.Background())))

	token, err := jwtSvc.GenerateToken("grpc-client", []string{auth.RoleAnalyst})
	require.NoError(t, err)
	authed := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
	assert.NoError(t, listServices(authed))

	// health Watch stays open without a token
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	watch, err := healthpb.NewHealthClient(conn).Watch(ctx, &healthpb.HealthCheckRequest{Service: analyzerServiceName})
	require.NoError(t, err)
	resp, err := watch.Recv()
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestUnimplemented(t *testing.T) {
	var srv UnimplementedAnalyzerServiceServer

	_, err := srv.AnalyzeMessage(context.Background(), &AnalyzeTextRequest{})

	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestNewServer_BadTLS(t *testing.T) {
	_, err := NewServer(newTestHandler(), ServerConfig{TLSCertFile: "missing.crt", TLSKeyFile: "missing.key"}, testLogger())

	assert.Error(t, err)
}
