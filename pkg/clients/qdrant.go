package clients

import (
	"context"
	"fmt"

	config "github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// ProductIDField — поле payload, по которому индексируются точки каталога.
const ProductIDField = "product_id"

type QdrantClient struct {
	Client *qdrant.Client
	cfg    *config.QdrantCfg
}

func NewQdrantClient(cfg *config.QdrantCfg) (*QdrantClient, error) {
	if !cfg.Enabled() {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: QDRANT_HOST is empty", e.ErrIncorrectEnvVariable))
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.ApiKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &QdrantClient{
		Client: client,
		cfg:    cfg,
	}, nil
}

func (q *QdrantClient) Close() error {
	return q.Client.Close()
}

// EnsureCollection создаёт коллекцию эмбеддингов каталога с индексом по product_id.
// Существующая коллекция с другой размерностью векторов считается ошибкой конфигурации.
func EnsureCollection(ctx context.Context, client *QdrantClient) error {
	const op = "clients.EnsureCollection"
	name := client.cfg.QdrantCollectionName

	exists, err := client.Client.CollectionExists(ctx, name)
	if err != nil {
		return e.Wrap(op, fmt.Errorf("failed to check collection existence: %w", err))
	}

	if exists {
		info, err := client.Client.GetCollectionInfo(ctx, name)
		if err != nil {
			return e.Wrap(op, err)
		}

		size := info.GetConfig().GetParams().GetVectorsConfig().GetParams().GetSize()
		if size != 0 && size != client.cfg.VectorSize {
			return e.Wrap(op, fmt.Errorf("%w: collection %s has size %d, VECTOR_SIZE is %d",
				e.ErrVectorDimensionInvalid, name, size, client.cfg.VectorSize))
		}
		return nil
	}

	if err := client.Client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     client.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return e.Wrap(op, fmt.Errorf("failed to create collection: %w", err))
	}

	if _, err := client.Client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: name,
		FieldName:      ProductIDField,
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		Wait:           qdrant.PtrOf(true),
	}); err != nil {
		return e.Wrap(op, fmt.Errorf("failed to create %s index: %w", ProductIDField, err))
	}

	return nil
}
