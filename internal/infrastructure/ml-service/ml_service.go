package ml_service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/metrics"
	"github.com/DRSN-tech/visual-search/internal/proto"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/jitter"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ModelState — состояние модели в процессе.
type ModelState int

const (
	ModelUnchecked ModelState = iota
	ModelLoading
	ModelReady
	ModelUnavailable
)

func (s ModelState) String() string {
	switch s {
	case ModelLoading:
		return "loading"
	case ModelReady:
		return "ready"
	case ModelUnavailable:
		return "unavailable"
	default:
		return "unchecked"
	}
}

const (
	loadKey     = "model"
	loadTimeout = 30 * time.Second
)

var (
	errServiceUnknown = errors.New("ml service is not registered")
	errNotServing     = errors.New("ml service is not serving")
)

// MLService — экстрактор признаков поверх внешнего ML-сервиса.
// Модель загружается лениво: первый вызов проверяет сервис, конкурентные вызовы ждут ту же загрузку.
type MLService struct {
	client     FeatureClient
	configured bool
	inputSize  int
	maxRetries int
	timeout    time.Duration
	logger     logger.Logger

	load singleflight.Group

	mu    sync.RWMutex
	state ModelState
	info  *proto.ModelInfoResponse
	err   error

	pixels *pixelPool
}

// NewMLService создаёт экстрактор. configured=false означает, что адрес ML-сервиса не задан:
// модель сразу считается недоступной.
func NewMLService(client FeatureClient, configured bool, inputSize, maxRetries int, timeout time.Duration, logger logger.Logger) *MLService {
	return &MLService{
		client:     client,
		configured: configured && client != nil,
		inputSize:  inputSize,
		maxRetries: max(maxRetries, 1),
		timeout:    timeout,
		logger:     logger,
		pixels:     newPixelPool(inputSize),
	}
}

// State возвращает текущее состояние модели.
func (m *MLService) State() ModelState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// ModelVersion возвращает версию загруженной модели или пустую строку.
func (m *MLService) ModelVersion() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.info == nil {
		return ""
	}
	return m.info.ModelVersion
}

// Available загружает модель при первом вызове.
func (m *MLService) Available(ctx context.Context) error {
	_, err := m.ensureLoaded(ctx)
	return err
}

// Extract считает эмбеддинг подготовленного изображения.
func (m *MLService) Extract(ctx context.Context, img image.Image) (domain.Embedding, error) {
	const op = "MLService.Extract"

	info, err := m.ensureLoaded(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	started := time.Now()
	vector, err := m.embed(ctx, img, info)
	if err != nil {
		metrics.ExtractionDurationSeconds.WithLabelValues("error").Observe(time.Since(started).Seconds())
		return nil, e.Wrap(op, err)
	}
	metrics.ExtractionDurationSeconds.WithLabelValues("ok").Observe(time.Since(started).Seconds())

	return vector, nil
}

func (m *MLService) embed(ctx context.Context, img image.Image, info *proto.ModelInfoResponse) (domain.Embedding, error) {
	buf := m.pixels.get()
	defer m.pixels.put(buf)

	width, height, err := fillRGB(buf, img)
	if err != nil {
		return nil, err
	}

	req := &proto.EmbedRequest{Width: int32(width), Height: int32(height), Pixels: buf.data[:width*height*3]}

	var res *proto.EmbedResponse
	err = jitter.Retry(ctx, m.backoff(), isTransient,
		func(attempt int, wait time.Duration, err error) {
			m.logger.Warnf("Embedding failed, retrying in %v (attempt %d): %v", wait, attempt, err)
		},
		func(ctx context.Context) error {
			callCtx, cancel := m.callContext(ctx)
			defer cancel()

			var callErr error
			res, callErr = m.client.Embed(callCtx, req)
			return callErr
		},
	)
	if err != nil {
		return nil, m.classifyEmbedError(ctx, err)
	}

	if len(res.GetVector()) == 0 {
		return nil, fmt.Errorf("%w: %w", e.ErrInferenceFailed, e.ErrVectorEmbeddingEmpty)
	}
	if dims := int(info.GetDimensions()); dims > 0 && len(res.GetVector()) != dims {
		return nil, fmt.Errorf("%w: %w: got %d, want %d",
			e.ErrInferenceFailed, e.ErrVectorDimensionInvalid, len(res.GetVector()), dims)
	}

	return domain.Embedding(res.GetVector()).Clone(), nil
}

// ensureLoaded возвращает сведения о модели, загружая её не более одного раза одновременно.
func (m *MLService) ensureLoaded(ctx context.Context) (*proto.ModelInfoResponse, error) {
	m.mu.RLock()
	state, info, err := m.state, m.info, m.err
	m.mu.RUnlock()

	switch state {
	case ModelReady:
		return info, nil
	case ModelUnavailable:
		return nil, err
	}

	ch := m.load.DoChan(loadKey, func() (any, error) {
		return m.loadModel()
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*proto.ModelInfoResponse), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// loadModel выполняется в единственном экземпляре. Контекст загрузки не зависит от вызывающего,
// чтобы отмена одного запроса не прерывала загрузку для остальных.
func (m *MLService) loadModel() (*proto.ModelInfoResponse, error) {
	const op = "MLService.loadModel"

	m.mu.Lock()
	switch m.state {
	case ModelReady:
		info := m.info
		m.mu.Unlock()
		return info, nil
	case ModelUnavailable:
		err := m.err
		m.mu.Unlock()
		return nil, err
	}
	m.setStateLocked(ModelLoading, nil, nil)
	m.mu.Unlock()

	if !m.configured {
		err := fmt.Errorf("%w: ml service address is not configured", e.ErrModelUnavailable)
		m.finishLoad(ModelUnavailable, nil, err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	serving, err := m.client.Health(ctx)
	if err == nil {
		switch serving {
		case healthpb.HealthCheckResponse_SERVING:
		case healthpb.HealthCheckResponse_SERVICE_UNKNOWN:
			err = errServiceUnknown
		default:
			err = fmt.Errorf("%w: %s", errNotServing, serving)
		}
	}
	if err != nil {
		return nil, m.failLoad(op, err)
	}

	info, err := m.client.ModelInfo(ctx, &proto.ModelInfoRequest{})
	if err != nil {
		return nil, m.failLoad(op, err)
	}

	if size := int(info.GetInputSize()); size > 0 && size != m.inputSize {
		m.logger.Warnf("Model input size %d differs from configured %d", size, m.inputSize)
	}

	m.finishLoad(ModelReady, info, nil)
	m.logger.Infof("Image recognition model ready. version: %s, dimensions: %d", info.GetModelVersion(), info.GetDimensions())

	return info, nil
}

// failLoad решает, окончательна ли недоступность модели.
// Сервис, который не отвечает, не обслуживает или не знает модель (Unavailable, NOT_SERVING,
// Unimplemented, SERVICE_UNKNOWN), фиксирует Unavailable до конца жизни процесса.
// Прочие сбои (таймаут, Internal) возвращают модель в Unchecked, и следующий запрос повторит загрузку.
func (m *MLService) failLoad(op string, cause error) error {
	err := fmt.Errorf("%w: %w", e.ErrModelUnavailable, cause)

	if isPermanentlyUnavailable(cause) {
		m.finishLoad(ModelUnavailable, nil, err)
	} else {
		m.finishLoad(ModelUnchecked, nil, nil)
	}

	m.logger.Warnf("Failed to load image recognition model: %v", e.Wrap(op, err))
	return err
}

func (m *MLService) finishLoad(state ModelState, info *proto.ModelInfoResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setStateLocked(state, info, err)
}

func (m *MLService) setStateLocked(state ModelState, info *proto.ModelInfoResponse, err error) {
	m.state = state
	m.info = info
	m.err = err
	metrics.ModelState.Set(float64(state))
}

func (m *MLService) classifyEmbedError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	switch status.Code(err) {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return fmt.Errorf("%w: %w", e.ErrInferenceFailed, err)
	case codes.Unavailable, codes.Unimplemented:
		// сервис пропал посреди поиска: следующая проверка доступности загрузит модель заново
		m.finishLoad(ModelUnchecked, nil, nil)
		return fmt.Errorf("%w: %w", e.ErrModelUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", e.ErrInferenceFailed, err)
	}
}

func (m *MLService) backoff() jitter.Backoff {
	return jitter.Backoff{
		Base:     200 * time.Millisecond,
		Max:      5 * time.Second,
		Attempts: m.maxRetries,
		Factor:   jitter.DefaultJitter,
	}
}

func (m *MLService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}

// isTransient — ошибки, после которых вызов модели имеет смысл повторить.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func isPermanentlyUnavailable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.Unimplemented, codes.NotFound:
		return true
	}

	return errors.Is(err, errServiceUnknown) || errors.Is(err, errNotServing)
}
