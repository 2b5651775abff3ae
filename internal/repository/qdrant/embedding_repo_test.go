package qdrant

import (
	"slices"
	"testing"
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID_Deterministic(t *testing.T) {
	assert.Equal(t, PointID("p1"), PointID("p1"))
	assert.NotEqual(t, PointID("p1"), PointID("p2"))
}

func TestToPoints(t *testing.T) {
	computed := time.Unix(1_700_000_000, 0)
	points := toPoints([]domain.CatalogEmbedding{
		{ProductID: "p1", Vector: domain.Embedding{1, 0, 0}, ModelVersion: "m@1", ComputedAt: computed,
			ImageRef: domain.ImageRef{ObjectKey: "products/p1.png"}},
		{ProductID: "p2"},
	})

	require.Len(t, points, 1)
	assert.Equal(t, PointID("p1"), points[0].GetId().GetUuid())
	assert.Equal(t, "p1", points[0].GetPayload()["product_id"].GetStringValue())
	assert.Equal(t, "products/p1.png", points[0].GetPayload()["image_key"].GetStringValue())
	assert.Equal(t, computed.UnixNano(), points[0].GetPayload()["computed_at"].GetIntegerValue())
}

func TestChunk(t *testing.T) {
	var sizes []int
	for batch := range chunk(make([]int, 600), upsertBatchSize) {
		sizes = append(sizes, len(batch))
	}
	assert.Equal(t, []int{256, 256, 88}, sizes)
	assert.Empty(t, slices.Collect(chunk([]int{}, 10)))
}
