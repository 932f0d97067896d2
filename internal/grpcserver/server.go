package grpcserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"github.com/park285/weather-assistant-go/internal/config"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = 40528

	// ServiceName 은 health 응답에 등록되는 서비스 이름이다.
	ServiceName = "weather_assistant.v1.Assistant"

	requestIDKey = "request_id"

	maxRecvMsgSizeBytes = 4 * 1024 * 1024
)

type ctxKey string

// Server 는 gRPC 서버와 health 상태를 묶는다.
type Server struct {
	GRPC     *grpc.Server
	Listener net.Listener
	Health   *grpchealth.Server
}

// NewServer: grpc.health.v1 을 노출하는 gRPC 서버를 생성합니다.
// GRPC_ENABLED 가 꺼져 있으면 nil 을 반환합니다.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil || !cfg.GRPC.Enabled {
		return nil, nil
	}

	host := strings.TrimSpace(cfg.GRPC.Host)
	if host == "" {
		host = defaultHost
	}
	// 0 은 OS 가 할당하는 임의 포트다.
	port := cfg.GRPC.Port
	if port < 0 {
		port = defaultPort
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	var lc net.ListenConfig
	listenCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lis, err := lc.Listen(listenCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	server := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxRecvMsgSizeBytes),
		grpc.ChainUnaryInterceptor(unaryInterceptor(logger)),
	)
	healthServer := grpchealth.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	ReportStatus(healthServer, cfg.Gemini.HasKey())

	return &Server{GRPC: server, Listener: lis, Health: healthServer}, nil
}

// ReportStatus: Gemini 키 유무에 따라 SERVING/NOT_SERVING 을 설정합니다.
func ReportStatus(healthServer *grpchealth.Server, geminiReady bool) {
	if healthServer == nil {
		return
	}
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if geminiReady {
		status = healthpb.HealthCheckResponse_SERVING
	}
	healthServer.SetServingStatus("", status)
	healthServer.SetServingStatus(ServiceName, status)
}

// Serve 는 리스너가 닫힐 때까지 요청을 처리한다.
func (s *Server) Serve() error {
	if err := s.GRPC.Serve(s.Listener); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Stop 은 health 를 NOT_SERVING 으로 내리고 진행 중인 RPC 를 마친 뒤 종료한다.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	s.Health.Shutdown()
	s.GRPC.GracefulStop()
}

func unaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()

		requestID := resolveRequestID(ctx)
		ctx = context.WithValue(ctx, ctxKey(requestIDKey), requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs("x-request-id", requestID))

		resp, err := handler(ctx, req)
		logGRPCRequest(logger, info, requestID, time.Since(start), err)
		return resp, err
	}
}

func logGRPCRequest(logger *slog.Logger, info *grpc.UnaryServerInfo, requestID string, latency time.Duration, err error) {
	if logger == nil {
		return
	}

	method := ""
	if info != nil {
		method = info.FullMethod
	}

	fields := []any{
		"request_id", requestID,
		"method", method,
		"latency", latency,
	}
	if err != nil {
		fields = append(fields, "err", err)
		logger.Warn("grpc_request_failed", fields...)
		return
	}
	logger.Debug("grpc_request", fields...)
}

func resolveRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if values := md.Get("x-request-id"); len(values) > 0 {
			if value := strings.TrimSpace(values[0]); value != "" {
				return value
			}
		}
	}

	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)
}

// RequestIDFromContext: gRPC 컨텍스트에서 request_id를 조회합니다.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(ctxKey(requestIDKey)).(string)
	return requestID
}
