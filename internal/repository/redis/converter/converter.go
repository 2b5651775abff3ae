package converter

import (
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
)

// CatalogVersion меняется при несовместимом изменении формата снимка; старые снимки считаются промахом.
const CatalogVersion = 1

// CatalogConverter преобразует каталог между domain и моделью Redis.
type CatalogConverter interface {
	ToRedisModel(products []domain.Product) *CatalogRedisModel
	ToDomain(model *CatalogRedisModel) []domain.Product
}

type catalogConverter struct{}

func NewCatalogConverter() CatalogConverter {
	return catalogConverter{}
}

func (catalogConverter) ToRedisModel(products []domain.Product) *CatalogRedisModel {
	models := make([]ProductRedisModel, 0, len(products))
	for _, p := range products {
		models = append(models, ProductRedisModel{
			ID:           p.ID,
			Name:         p.Name,
			CategoryName: p.CategoryName,
			Price:        p.Price,
			ImageKey:     p.Image.ObjectKey,
			ImageURL:     p.Image.URL,
		})
	}

	return &CatalogRedisModel{
		Version:  CatalogVersion,
		CachedAt: time.Now().UTC(),
		Products: models,
	}
}

func (catalogConverter) ToDomain(model *CatalogRedisModel) []domain.Product {
	products := make([]domain.Product, 0, len(model.Products))
	for _, m := range model.Products {
		products = append(products, *domain.NewProduct(
			m.ID,
			m.Name,
			m.CategoryName,
			m.Price,
			domain.ImageRef{ObjectKey: m.ImageKey, URL: m.ImageURL},
		))
	}
	return products
}
