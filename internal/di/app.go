package di

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/park285/weather-assistant-go/internal/config"
	"github.com/park285/weather-assistant-go/internal/grpcserver"
	"github.com/park285/weather-assistant-go/internal/telemetry"
)

// App: 애플리케이션 구성 요소를 묶는다.
type App struct {
	Server     *http.Server
	GRPCServer *grpcserver.Server // GRPC_ENABLED 일 때만 설정됨
	Telemetry  *telemetry.Provider
	Logger     *slog.Logger
	Config     *config.Config
}

// NewApp: App 인스턴스를 생성합니다.
func NewApp(
	server *http.Server,
	grpcServer *grpcserver.Server,
	telemetryProvider *telemetry.Provider,
	logger *slog.Logger,
	cfg *config.Config,
) *App {
	return &App{
		Server:     server,
		GRPCServer: grpcServer,
		Telemetry:  telemetryProvider,
		Logger:     logger,
		Config:     cfg,
	}
}

// Close: 앱 리소스를 정리합니다.
func (a *App) Close(ctx context.Context) {
	if a.GRPCServer != nil {
		a.GRPCServer.Stop()
	}
	if a.Telemetry != nil {
		if err := a.Telemetry.Shutdown(ctx); err != nil && a.Logger != nil {
			a.Logger.Warn("telemetry_shutdown_failed", "err", err)
		}
	}
}
