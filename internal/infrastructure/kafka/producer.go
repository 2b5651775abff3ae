package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/visual-search/internal/cfg"
	drsnProto "github.com/DRSN-tech/visual-search/internal/proto"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
)

type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	if !cfg.Enabled() {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: KAFKA_BROKERS is empty", e.ErrIncorrectEnvVariable))
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// WriteRawMessage отправляет уже сериализованное событие; ключ — ID поиска.
func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.Key),
		Value: req.Payload,
	})
}

// EncodeSearchEvent сериализует событие завершённого поиска в events.v1.SearchCompletedEvent.
func (p *Producer) EncodeSearchEvent(event *usecase.SearchEvent) ([]byte, error) {
	return EncodeSearchEvent(event)
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		err := conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// EncodeSearchEvent — сериализация события без подключения к брокеру.
func EncodeSearchEvent(event *usecase.SearchEvent) ([]byte, error) {
	msg := &drsnProto.SearchCompletedEvent{
		EventId:        uuid.NewString(),
		EventType:      string(usecase.SearchCompleted),
		EventTimestamp: time.Now().UnixMilli(),
		SearchId:       event.SearchID,
		ResultCount:    int32(event.ResultCount),
		TopProductIds:  event.TopProductIDs,
		Scanned:        int32(event.Scanned),
		Skipped:        int32(event.Skipped),
		ModelVersion:   event.ModelVersion,
		DurationMs:     event.Duration.Milliseconds(),
		CreatedAt:      event.CreatedAt.UnixMilli(),
	}

	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, e.Wrap("kafka.EncodeSearchEvent", err)
	}

	return data, nil
}
