package qdrant

import (
	"context"
	"iter"

	"github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

const upsertBatchSize = 256

// EmbeddingRepo выгружает эмбеддинги каталога в коллекцию Qdrant.
type EmbeddingRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *EmbeddingRepo {
	return &EmbeddingRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет точки коллекции; повторная выгрузка того же товара перезаписывает точку.
func (q *EmbeddingRepo) Upsert(ctx context.Context, embeddings []domain.CatalogEmbedding) error {
	wait := true
	for batch := range chunk(toPoints(embeddings), upsertBatchSize) {
		_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: q.cfg.QdrantCollectionName,
			Wait:           &wait,
			Points:         batch,
		})
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

// PointID — детерминированный идентификатор точки товара.
func PointID(productID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(productID)).String()
}

func toPoints(embeddings []domain.CatalogEmbedding) []*qdrant.PointStruct {
	points := make([]*qdrant.PointStruct, 0, len(embeddings))
	for _, emb := range embeddings {
		if len(emb.Vector) == 0 {
			continue
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(PointID(emb.ProductID)),
			Vectors: qdrant.NewVectors(emb.Vector...),
			Payload: qdrant.NewValueMap(emb.Payload()),
		})
	}
	return points
}

func chunk[T any](items []T, size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for start := 0; start < len(items); start += size {
			if !yield(items[start:min(start+size, len(items))]) {
				return
			}
		}
	}
}
