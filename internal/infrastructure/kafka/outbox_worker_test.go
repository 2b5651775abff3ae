package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxRepo struct {
	mu        sync.Mutex
	pending   []*usecase.OutboxEvent
	processed []int64
	returned  []int64
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := min(limit, len(f.pending))
	batch := f.pending[:n]
	f.pending = f.pending[n:]
	return batch, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutboxRepo) ReturnToPending(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.returned = append(f.returned, id)
	return nil
}

type fakeProducer struct {
	mu   sync.Mutex
	keys []string
	fail func(key string) error
}

func (f *fakeProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		if err := f.fail(req.Key); err != nil {
			return err
		}
	}
	f.keys = append(f.keys, req.Key)
	return nil
}

func outboxEvents(n int) []*usecase.OutboxEvent {
	events := make([]*usecase.OutboxEvent, 0, n)
	for i := range n {
		ev := usecase.NewOutboxEvent("search-"+string(rune('a'+i)), usecase.SearchCompleted, []byte{byte(i)})
		ev.ID = int64(i + 1)
		events = append(events, ev)
	}
	return events
}

func TestOutboxWorker_DrainsAllBatches(t *testing.T) {
	repo := &fakeOutboxRepo{pending: outboxEvents(25)}
	producer := &fakeProducer{}
	w := NewOutboxWorker(repo, logger.NewNop(), producer, "", 0)

	w.drain(context.Background())

	assert.Len(t, repo.processed, 25)
	assert.Empty(t, repo.returned)
	require.Len(t, producer.keys, 25)
	assert.Equal(t, "search-a", producer.keys[0])
}

func TestOutboxWorker_FailedEventsReturnToPending(t *testing.T) {
	repo := &fakeOutboxRepo{pending: outboxEvents(3)}
	producer := &fakeProducer{fail: func(key string) error {
		if key == "search-b" {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	}}
	w := NewOutboxWorker(repo, logger.NewNop(), producer, "", 0)

	hasMore, err := w.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, []int64{1, 3}, repo.processed)
	assert.Equal(t, []int64{2}, repo.returned)
}

func TestOutboxWorker_StopsWhenBrokerDown(t *testing.T) {
	repo := &fakeOutboxRepo{pending: outboxEvents(30)}
	producer := &fakeProducer{fail: func(string) error { return errors.New("broker not available") }}
	w := NewOutboxWorker(repo, logger.NewNop(), producer, "", 0)

	w.drain(context.Background())

	// один батч, дальше воркер ждёт следующего тика
	assert.Len(t, repo.returned, outboxBatchSize)
	assert.Empty(t, repo.processed)
}

func TestOutboxWorker_StartStop(t *testing.T) {
	repo := &fakeOutboxRepo{pending: outboxEvents(2)}
	producer := &fakeProducer{}
	w := NewOutboxWorker(repo, logger.NewNop(), producer, "", 0)

	w.Start(context.Background())
	w.Stop()
	w.Stop()

	assert.Len(t, repo.processed, 2)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("read tcp: i/o timeout")))
	assert.False(t, isRetryableError(errors.New("message too large")))
	assert.False(t, isRetryableError(nil))
}
