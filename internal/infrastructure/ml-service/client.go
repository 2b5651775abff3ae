package ml_service

import (
	"context"

	"github.com/DRSN-tech/visual-search/internal/proto"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName — имя gRPC-сервиса модели признаков, оно же имя для health-check.
const ServiceName = "ml.v1.FeatureService"

// FeatureClient — транспорт до ML-сервиса.
type FeatureClient interface {
	Health(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error)
	ModelInfo(ctx context.Context, req *proto.ModelInfoRequest) (*proto.ModelInfoResponse, error)
	Embed(ctx context.Context, req *proto.EmbedRequest) (*proto.EmbedResponse, error)
}

// GRPCFeatureClient вызывает ML-сервис по gRPC.
type GRPCFeatureClient struct {
	features proto.FeatureServiceClient
	health   healthpb.HealthClient
}

func NewGRPCFeatureClient(conn grpc.ClientConnInterface) *GRPCFeatureClient {
	return &GRPCFeatureClient{
		features: proto.NewFeatureServiceClient(conn),
		health:   healthpb.NewHealthClient(conn),
	}
}

func (c *GRPCFeatureClient) Health(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	res, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}

	return res.GetStatus(), nil
}

func (c *GRPCFeatureClient) ModelInfo(ctx context.Context, req *proto.ModelInfoRequest) (*proto.ModelInfoResponse, error) {
	return c.features.ModelInfo(ctx, req)
}

func (c *GRPCFeatureClient) Embed(ctx context.Context, req *proto.EmbedRequest) (*proto.EmbedResponse, error) {
	return c.features.Embed(ctx, req)
}
