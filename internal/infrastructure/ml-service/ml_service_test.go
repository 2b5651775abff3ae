package ml_service

import (
	"context"
	"image"
	"image/color"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/visual-search/internal/proto"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeClient struct {
	healthStatus healthpb.HealthCheckResponse_ServingStatus
	healthErr    error
	info         *proto.ModelInfoResponse
	release      chan struct{} // если не nil, Health ждёт закрытия
	embedErrs    []error       // ошибки, которые Embed вернёт по очереди
	vector       []float32

	healthCalls atomic.Int32
	embedCalls  atomic.Int32
	mu          sync.Mutex
	lastPixels  []byte
}

func (f *fakeClient) Health(context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	f.healthCalls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.healthStatus, f.healthErr
}

func (f *fakeClient) ModelInfo(context.Context, *proto.ModelInfoRequest) (*proto.ModelInfoResponse, error) {
	return f.info, nil
}

func (f *fakeClient) Embed(_ context.Context, req *proto.EmbedRequest) (*proto.EmbedResponse, error) {
	n := int(f.embedCalls.Add(1)) - 1

	f.mu.Lock()
	f.lastPixels = append([]byte(nil), req.Pixels...)
	f.mu.Unlock()

	if n < len(f.embedErrs) && f.embedErrs[n] != nil {
		return nil, f.embedErrs[n]
	}
	return &proto.EmbedResponse{Vector: f.vector, ModelVersion: f.info.GetModelVersion()}, nil
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		healthStatus: healthpb.HealthCheckResponse_SERVING,
		info:         &proto.ModelInfoResponse{ModelVersion: "mobilenet-v2@1", InputSize: 4, Dimensions: 3},
		vector:       []float32{0.1, 0.2, 0.3},
	}
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestMLService_ExtractLoadsModelOnce(t *testing.T) {
	client := newFakeClient()
	svc := NewMLService(client, true, 4, 3, time.Second, logger.NewNop())
	assert.Equal(t, ModelUnchecked, svc.State())
	assert.Empty(t, svc.ModelVersion())

	vec, err := svc.Extract(context.Background(), solid(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, []float32(vec))

	_, err = svc.Extract(context.Background(), solid(4, 4, color.RGBA{A: 255}))
	require.NoError(t, err)

	assert.EqualValues(t, 1, client.healthCalls.Load())
	assert.Equal(t, ModelReady, svc.State())
	assert.Equal(t, "mobilenet-v2@1", svc.ModelVersion())
}

func TestMLService_ConcurrentCallersShareOneLoad(t *testing.T) {
	client := newFakeClient()
	client.release = make(chan struct{})
	svc := NewMLService(client, true, 4, 1, time.Second, logger.NewNop())

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Available(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return svc.State() == ModelLoading }, time.Second, time.Millisecond)
	close(client.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, client.healthCalls.Load())
}

func TestMLService_NotConfiguredIsUnavailable(t *testing.T) {
	svc := NewMLService(nil, false, 224, 1, time.Second, logger.NewNop())

	err := svc.Available(context.Background())
	assert.ErrorIs(t, err, e.ErrModelUnavailable)
	assert.Equal(t, ModelUnavailable, svc.State())

	_, err = svc.Extract(context.Background(), solid(2, 2, color.RGBA{}))
	assert.ErrorIs(t, err, e.ErrModelUnavailable)
}

func TestMLService_UnknownServiceIsSticky(t *testing.T) {
	client := newFakeClient()
	client.healthStatus = healthpb.HealthCheckResponse_SERVICE_UNKNOWN
	svc := NewMLService(client, true, 4, 1, time.Second, logger.NewNop())

	assert.ErrorIs(t, svc.Available(context.Background()), e.ErrModelUnavailable)
	assert.ErrorIs(t, svc.Available(context.Background()), e.ErrModelUnavailable)

	assert.EqualValues(t, 1, client.healthCalls.Load())
	assert.Equal(t, ModelUnavailable, svc.State())
}

func TestMLService_TransientLoadFailureRetriesLater(t *testing.T) {
	client := newFakeClient()
	client.healthErr = status.Error(codes.DeadlineExceeded, "health check timed out")
	svc := NewMLService(client, true, 4, 1, time.Second, logger.NewNop())

	assert.ErrorIs(t, svc.Available(context.Background()), e.ErrModelUnavailable)
	assert.Equal(t, ModelUnchecked, svc.State())

	client.healthErr = nil
	require.NoError(t, svc.Available(context.Background()))
	assert.EqualValues(t, 2, client.healthCalls.Load())
}

func TestMLService_UnavailableAtLoadIsSticky(t *testing.T) {
	tests := []struct {
		name   string
		status healthpb.HealthCheckResponse_ServingStatus
		err    error
	}{
		{name: "connection refused", err: status.Error(codes.Unavailable, "connection refused")},
		{name: "not serving", status: healthpb.HealthCheckResponse_NOT_SERVING},
		{name: "unimplemented", err: status.Error(codes.Unimplemented, "unknown service grpc.health.v1.Health")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			client.healthStatus = tt.status
			client.healthErr = tt.err
			svc := NewMLService(client, true, 4, 1, time.Second, logger.NewNop())

			assert.ErrorIs(t, svc.Available(context.Background()), e.ErrModelUnavailable)
			assert.Equal(t, ModelUnavailable, svc.State())

			// сервис поднялся, но процесс уже считает модель недоступной
			client.healthStatus = healthpb.HealthCheckResponse_SERVING
			client.healthErr = nil
			assert.ErrorIs(t, svc.Available(context.Background()), e.ErrModelUnavailable)
			assert.EqualValues(t, 1, client.healthCalls.Load())
		})
	}
}

func TestMLService_UnavailableMidSearchReloads(t *testing.T) {
	client := newFakeClient()
	client.embedErrs = []error{status.Error(codes.Unimplemented, "model unloaded")}
	svc := NewMLService(client, true, 4, 1, time.Second, logger.NewNop())

	_, err := svc.Extract(context.Background(), solid(4, 4, color.RGBA{A: 255}))
	assert.ErrorIs(t, err, e.ErrModelUnavailable)
	assert.Equal(t, ModelUnchecked, svc.State())

	_, err = svc.Extract(context.Background(), solid(4, 4, color.RGBA{A: 255}))
	require.NoError(t, err)
	assert.EqualValues(t, 2, client.healthCalls.Load())
}

func TestMLService_EmbedRetriesTransientErrors(t *testing.T) {
	client := newFakeClient()
	client.embedErrs = []error{status.Error(codes.Unavailable, "busy"), status.Error(codes.ResourceExhausted, "busy")}
	svc := NewMLService(client, true, 4, 3, time.Second, logger.NewNop())

	_, err := svc.Extract(context.Background(), solid(4, 4, color.RGBA{A: 255}))
	require.NoError(t, err)
	assert.EqualValues(t, 3, client.embedCalls.Load())
}

func TestMLService_InvalidImageIsInferenceFailure(t *testing.T) {
	client := newFakeClient()
	client.embedErrs = []error{status.Error(codes.InvalidArgument, "bad pixels")}
	svc := NewMLService(client, true, 4, 3, time.Second, logger.NewNop())

	_, err := svc.Extract(context.Background(), solid(4, 4, color.RGBA{A: 255}))
	assert.ErrorIs(t, err, e.ErrInferenceFailed)
	assert.EqualValues(t, 1, client.embedCalls.Load())
	assert.Equal(t, ModelReady, svc.State())
}

func TestMLService_DimensionMismatch(t *testing.T) {
	client := newFakeClient()
	client.vector = []float32{1, 2}
	svc := NewMLService(client, true, 4, 1, time.Second, logger.NewNop())

	_, err := svc.Extract(context.Background(), solid(4, 4, color.RGBA{A: 255}))
	assert.ErrorIs(t, err, e.ErrInferenceFailed)
	assert.ErrorIs(t, err, e.ErrVectorDimensionInvalid)

	client.vector = nil
	_, err = svc.Extract(context.Background(), solid(4, 4, color.RGBA{A: 255}))
	assert.ErrorIs(t, err, e.ErrVectorEmbeddingEmpty)
}

func TestMLService_SendsRGBPixels(t *testing.T) {
	client := newFakeClient()
	svc := NewMLService(client, true, 4, 1, time.Second, logger.NewNop())

	img := solid(2, 1, color.RGBA{R: 255, G: 128, B: 1, A: 255})
	_, err := svc.Extract(context.Background(), img)
	require.NoError(t, err)

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, []byte{255, 128, 1, 255, 128, 1}, client.lastPixels)
}

func TestFillRGB_GenericImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 200})
	gray.SetGray(1, 0, color.Gray{Y: 7})

	buf := &pixelBuffer{}
	w, h, err := fillRGB(buf, gray)
	require.NoError(t, err)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, []byte{200, 200, 200, 7, 7, 7}, buf.data)

	_, _, err = fillRGB(buf, image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, e.ErrInferenceFailed)
}

// stubModel — модель на стороне сервера: эмбеддинг равен средним значениям каналов.
type stubModel struct {
	proto.UnimplementedFeatureServiceServer
}

func (stubModel) ModelInfo(context.Context, *proto.ModelInfoRequest) (*proto.ModelInfoResponse, error) {
	return &proto.ModelInfoResponse{ModelVersion: "stub@1", InputSize: 2, Dimensions: 3}, nil
}

func (stubModel) Embed(_ context.Context, req *proto.EmbedRequest) (*proto.EmbedResponse, error) {
	if len(req.GetPixels()) != int(req.GetWidth()*req.GetHeight())*3 {
		return nil, status.Error(codes.InvalidArgument, "pixel buffer size mismatch")
	}

	var sum [3]float32
	for i := 0; i < len(req.Pixels); i += 3 {
		sum[0] += float32(req.Pixels[i])
		sum[1] += float32(req.Pixels[i+1])
		sum[2] += float32(req.Pixels[i+2])
	}
	n := float32(req.GetWidth() * req.GetHeight())

	return &proto.EmbedResponse{Vector: []float32{sum[0] / n, sum[1] / n, sum[2] / n}, ModelVersion: "stub@1"}, nil
}

func startFeatureServer(t *testing.T, serving healthpb.HealthCheckResponse_ServingStatus) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	proto.RegisterFeatureServiceServer(srv, stubModel{})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, serving)
	healthpb.RegisterHealthServer(srv, hs)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestGRPCFeatureClient_OverBufconn(t *testing.T) {
	conn := startFeatureServer(t, healthpb.HealthCheckResponse_SERVING)
	svc := NewMLService(NewGRPCFeatureClient(conn), true, 2, 2, 5*time.Second, logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, svc.Available(ctx))
	assert.Equal(t, "stub@1", svc.ModelVersion())

	vec, err := svc.Extract(ctx, solid(2, 2, color.RGBA{R: 100, G: 50, B: 0, A: 255}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{100, 50, 0}, []float32(vec), 1e-6)
}

func TestGRPCFeatureClient_NotServing(t *testing.T) {
	conn := startFeatureServer(t, healthpb.HealthCheckResponse_NOT_SERVING)
	svc := NewMLService(NewGRPCFeatureClient(conn), true, 2, 1, 5*time.Second, logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.ErrorIs(t, svc.Available(ctx), e.ErrModelUnavailable)
	assert.Equal(t, ModelUnavailable, svc.State())
}

func TestGRPCFeatureClient_UnregisteredModel(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	proto.RegisterFeatureServiceServer(srv, proto.UnimplementedFeatureServiceServer{})
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	svc := NewMLService(NewGRPCFeatureClient(conn), true, 2, 1, 5*time.Second, logger.NewNop())
	assert.ErrorIs(t, svc.Available(context.Background()), e.ErrModelUnavailable)
	assert.Equal(t, ModelUnavailable, svc.State())
}
