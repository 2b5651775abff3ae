package similarity

import (
	"math/rand"
	"testing"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

func randomEmbedding(rng *rand.Rand, n int) domain.Embedding {
	v := make(domain.Embedding, n)
	for i := range v {
		v[i] = rng.Float32()*2 - 1
	}
	return v
}

func TestCosineCommutative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		a := randomEmbedding(rng, 64)
		b := randomEmbedding(rng, 64)
		assert.InDelta(t, Cosine(a, b), Cosine(b, a), tolerance)
	}
}

func TestCosineSelfIsOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := randomEmbedding(rng, 1024)
		assert.InDelta(t, 1.0, Cosine(a, a), tolerance)
	}
}

func TestCosineEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Embedding
		want float64
	}{
		{name: "length mismatch", a: domain.Embedding{1, 0}, b: domain.Embedding{1, 0, 0}, want: 0},
		{name: "zero norm", a: domain.Embedding{0, 0}, b: domain.Embedding{1, 0}, want: 0},
		{name: "both empty", a: domain.Embedding{}, b: domain.Embedding{}, want: 0},
		{name: "nil", a: nil, b: domain.Embedding{1}, want: 0},
		{name: "orthogonal", a: domain.Embedding{1, 0}, b: domain.Embedding{0, 1}, want: 0},
		{name: "opposite", a: domain.Embedding{1, 2}, b: domain.Embedding{-1, -2}, want: -1},
		{name: "scaled", a: domain.Embedding{1, 2, 3}, b: domain.Embedding{2, 4, 6}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), tolerance)
			})
		})
	}
}

func TestRankScenario(t *testing.T) {
	catalog := []domain.CatalogEntry{
		{ProductID: "p1", Embedding: domain.Embedding{1, 0}},
		{ProductID: "p2", Embedding: domain.Embedding{0, 1}},
		{ProductID: "p3", Embedding: domain.Embedding{1, 0}},
	}

	got := Rank(domain.Embedding{1, 0}, catalog, 0.5)

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ProductID)
	assert.InDelta(t, 1.0, got[0].Score, tolerance)
	assert.Equal(t, "p3", got[1].ProductID)
	assert.InDelta(t, 1.0, got[1].Score, tolerance)
}

func TestRankSortedAndThresholded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	query := randomEmbedding(rng, 32)

	catalog := make([]domain.CatalogEntry, 0, 200)
	for i := 0; i < 200; i++ {
		catalog = append(catalog, domain.NewCatalogEntry(string(rune('a'+i%26))+string(rune('0'+i/26)), randomEmbedding(rng, 32)))
	}
	// запись другой размерности получает 0 и не ломает ранжирование
	catalog = append(catalog, domain.NewCatalogEntry("bad-dim", domain.Embedding{1, 2, 3}))

	const threshold = 0.1
	got := Rank(query, catalog, threshold)

	for i, r := range got {
		assert.GreaterOrEqual(t, r.Score, threshold)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Score, r.Score)
		}
		assert.NotEqual(t, "bad-dim", r.ProductID)
	}

	assert.Equal(t, got, Rank(query, catalog, threshold), "rank must be idempotent")
}

func TestRankDoesNotMutateInputs(t *testing.T) {
	query := domain.Embedding{0.5, 0.5}
	catalog := []domain.CatalogEntry{
		{ProductID: "low", Embedding: domain.Embedding{0.1, 1}},
		{ProductID: "high", Embedding: domain.Embedding{1, 1}},
	}
	queryCopy := query.Clone()
	catalogCopy := []domain.CatalogEntry{
		{ProductID: "low", Embedding: catalog[0].Embedding.Clone()},
		{ProductID: "high", Embedding: catalog[1].Embedding.Clone()},
	}

	got := Rank(query, catalog, -1)

	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].ProductID)
	assert.Equal(t, queryCopy, query)
	assert.Equal(t, catalogCopy, catalog)
}

func TestRankEmptyCatalog(t *testing.T) {
	got := Rank(domain.Embedding{1}, nil, DefaultCatalogThreshold)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIsSimilar(t *testing.T) {
	score, ok := IsSimilar(domain.Embedding{1, 0}, domain.Embedding{1, 1}, DefaultPairwiseThreshold)
	assert.True(t, ok)
	assert.InDelta(t, 0.7071, score, 1e-4)

	_, ok = IsSimilar(domain.Embedding{1, 0}, domain.Embedding{0, 1}, DefaultPairwiseThreshold)
	assert.False(t, ok)
}
