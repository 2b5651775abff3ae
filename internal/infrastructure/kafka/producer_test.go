package kafka

import (
	"testing"
	"time"

	"github.com/DRSN-tech/visual-search/internal/cfg"
	drsnProto "github.com/DRSN-tech/visual-search/internal/proto"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestNewProducer_Disabled(t *testing.T) {
	_, err := NewProducer(logger.NewNop(), &cfg.KafkaCfg{Topic: "t"})
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}

func TestEncodeSearchEvent(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	event := &usecase.SearchEvent{
		SearchID:      "s-1",
		ResultCount:   2,
		TopProductIDs: []string{"p1", "p3"},
		Scanned:       3,
		Skipped:       1,
		ModelVersion:  "mobilenet@1",
		Duration:      1250 * time.Millisecond,
		CreatedAt:     created,
	}

	data, err := EncodeSearchEvent(event)
	require.NoError(t, err)

	var got drsnProto.SearchCompletedEvent
	require.NoError(t, proto.Unmarshal(data, &got))

	assert.Equal(t, "s-1", got.GetSearchId())
	assert.Equal(t, string(usecase.SearchCompleted), got.GetEventType())
	assert.Equal(t, []string{"p1", "p3"}, got.GetTopProductIds())
	assert.EqualValues(t, 2, got.GetResultCount())
	assert.EqualValues(t, 3, got.GetScanned())
	assert.EqualValues(t, 1, got.GetSkipped())
	assert.Equal(t, "mobilenet@1", got.GetModelVersion())
	assert.EqualValues(t, 1250, got.GetDurationMs())
	assert.Equal(t, created.UnixMilli(), got.GetCreatedAt())
	assert.NotEmpty(t, got.GetEventId())
	assert.Positive(t, got.GetEventTimestamp())
}

func TestEncodeSearchEvent_Empty(t *testing.T) {
	data, err := EncodeSearchEvent(&usecase.SearchEvent{SearchID: "s-2"})
	require.NoError(t, err)

	var got drsnProto.SearchCompletedEvent
	require.NoError(t, proto.Unmarshal(data, &got))
	assert.Equal(t, "s-2", got.GetSearchId())
	assert.Empty(t, got.GetTopProductIds())
	assert.Zero(t, got.GetResultCount())
}
