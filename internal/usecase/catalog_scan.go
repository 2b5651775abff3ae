package usecase

import (
	"context"
	"errors"
	"iter"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/pkg/e"
)

// scanItem — результат обработки одного товара каталога.
type scanItem struct {
	Index     int // позиция товара в каталоге, с нуля
	Total     int
	Product   domain.Product
	Embedding domain.Embedding
	Err       error
}

// scanCatalog последовательно (по одному изображению за раз) считает эмбеддинги товаров.
// Итерация прекращается при отмене ctx или если потребитель перестал читать.
func (v *VisualSearchUseCase) scanCatalog(ctx context.Context, products []domain.Product) iter.Seq[scanItem] {
	return func(yield func(scanItem) bool) {
		for i, product := range products {
			if ctx.Err() != nil {
				return
			}

			item := scanItem{Index: i, Total: len(products), Product: product}
			item.Embedding, item.Err = v.embedProduct(ctx, product)

			if !yield(item) {
				return
			}
		}
	}
}

// embedProduct загружает изображение товара и считает его эмбеддинг.
func (v *VisualSearchUseCase) embedProduct(ctx context.Context, product domain.Product) (domain.Embedding, error) {
	if product.Image.IsEmpty() {
		return nil, e.ErrNoCatalogImage
	}

	data, err := v.fetcher.Fetch(ctx, product.Image)
	if err != nil {
		return nil, err
	}

	return v.embed(ctx, data)
}

// isFatalScanError отделяет ошибки, прерывающие весь поиск, от пропускаемых ошибок отдельного товара.
func isFatalScanError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}

	return errors.Is(err, e.ErrRenderingUnavailable) ||
		errors.Is(err, e.ErrModelUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
