package usecase

import (
	"context"

	"github.com/DRSN-tech/visual-search/internal/domain"
)

// CatalogRepository — внешний Catalog Store: список товаров с уникальными ID.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// CatalogCache кэширует список товаров каталога.
type CatalogCache interface {
	// GetCatalog возвращает found=false при промахе кэша.
	GetCatalog(ctx context.Context) (products []domain.Product, found bool, err error)
	SetCatalog(ctx context.Context, products []domain.Product) error
	DeleteCatalog(ctx context.Context) error
}

// SearchRepository хранит историю поисков.
type SearchRepository interface {
	// Save атомарно сохраняет запись поиска и, если event не nil, событие в outbox.
	Save(ctx context.Context, record *domain.SearchRecord, event *OutboxEvent) error
}

// OutboxRepository выдаёт события outbox на отправку.
type OutboxRepository interface {
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	// ReturnToPending возвращает неотправленное событие в очередь.
	ReturnToPending(ctx context.Context, id int64) error
}

// EmbeddingRepository — внешний векторный индекс, куда выгружаются эмбеддинги каталога.
type EmbeddingRepository interface {
	Upsert(ctx context.Context, embeddings []domain.CatalogEmbedding) error
}
