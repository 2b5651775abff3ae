package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/repository/redis/converter"
	"github.com/DRSN-tech/visual-search/pkg/clients"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:products"

var errStaleSnapshot = errors.New("stale catalog snapshot")

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.CatalogConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.CatalogConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный снимок каталога.
// Повреждённый или устаревший снимок удаляется и считается промахом.
func (c *CacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, bool, error) {
	data, err := c.client.Client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := unmarshalCatalog(data)
	if err != nil {
		c.logger.Warnf("Catalog cache entry dropped: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.DeleteCatalog(ctx); err != nil {
			c.logger.Warnf("Redis del failed: %v", err)
		}
		return nil, false, nil
	}

	return c.conv.ToDomain(model), true, nil
}

// SetCatalog кэширует каталог целиком на CatalogTTL.
func (c *CacheRepo) SetCatalog(ctx context.Context, products []domain.Product) error {
	data, err := marshalCatalog(c.conv.ToRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	pipeline := c.client.Client.TxPipeline()
	pipeline.Del(ctx, catalogKey)
	pipeline.Set(ctx, catalogKey, data, c.cfg.CatalogTTL)

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteCatalog сбрасывает кэш каталога; следующий поиск перечитает репозиторий.
func (c *CacheRepo) DeleteCatalog(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, catalogKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// marshalCatalog сериализует снимок в JSON для кэша
func marshalCatalog(model *converter.CatalogRedisModel) ([]byte, error) {
	return json.Marshal(model)
}

// unmarshalCatalog десериализует снимок и проверяет версию формата
func unmarshalCatalog(data []byte) (*converter.CatalogRedisModel, error) {
	var model converter.CatalogRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	if model.Version != converter.CatalogVersion {
		return nil, fmt.Errorf("%w: version %d", errStaleSnapshot, model.Version)
	}

	return &model, nil
}
