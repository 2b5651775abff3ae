package grpc

import (
	"context"
	"fmt"
	"math"
	"net"

	"github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/internal/proto"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName — имя gRPC-сервиса визуального поиска, оно же имя для health-check.
const ServiceName = "visualsearch.v1.VisualSearchService"

const (
	defaultMaxRecvMsgSize = 4 << 20
	recvMsgOverhead       = 1 << 20
)

type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	cfg    *cfg.GRPCConfig
	logger logger.Logger
}

// NewGRPCServer создаёт сервер; maxUploadBytes — лимит загружаемого изображения.
func NewGRPCServer(cfg *cfg.GRPCConfig, maxUploadBytes int64, logger logger.Logger) *GRPCServer {
	s := &GRPCServer{
		server: grpc.NewServer(
			grpc.MaxRecvMsgSize(maxRecvMsgSize(maxUploadBytes)),
		),
		health: health.NewServer(),
		cfg:    cfg,
		logger: logger,
	}
	healthpb.RegisterHealthServer(s.server, s.health)

	return s
}

// RegisterServices регистрирует сервис поиска; health отражает доступность модели.
func (s *GRPCServer) RegisterServices(searchUC usecase.VisualSearchUC) {
	proto.RegisterVisualSearchServiceServer(s.server, NewSearchService(searchUC, s.logger))
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
}

// SetModelAvailable переключает health-статус сервиса поиска.
func (s *GRPCServer) SetModelAvailable(available bool) {
	st := healthpb.HealthCheckResponse_SERVING
	if !available {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus(ServiceName, st)
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}

// maxRecvMsgSize оставляет запас над лимитом загрузки: изображение чуть больше лимита должно дойти
// до проверки размера и получить причину отказа, а не ResourceExhausted от транспорта.
func maxRecvMsgSize(maxUploadBytes int64) int {
	if maxUploadBytes <= 0 {
		return defaultMaxRecvMsgSize
	}

	size := 2*maxUploadBytes + recvMsgOverhead
	if size > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(size)
}
