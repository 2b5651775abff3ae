package domain

import "time"

// Embedding — вектор признаков одного изображения. После создания не изменяется.
type Embedding []float32

// Clone возвращает независимую копию вектора.
func (e Embedding) Clone() Embedding {
	if e == nil {
		return nil
	}

	out := make(Embedding, len(e))
	copy(out, e)
	return out
}

// CatalogEntry связывает товар каталога с эмбеддингом его изображения.
// Живёт в пределах одного поиска.
type CatalogEntry struct {
	ProductID string
	Embedding Embedding
}

func NewCatalogEntry(productID string, embedding Embedding) CatalogEntry {
	return CatalogEntry{
		ProductID: productID,
		Embedding: embedding,
	}
}

// Payload описывает дополнительную информацию вектора при экспорте
type Payload map[string]any

// CatalogEmbedding — эмбеддинг товара, выгружаемый во внешний векторный индекс после скана каталога.
type CatalogEmbedding struct {
	ProductID    string
	Vector       Embedding
	ModelVersion string
	ImageRef     ImageRef
	ComputedAt   time.Time
}

// Payload формирует метаданные точки для векторного индекса.
func (c CatalogEmbedding) Payload() Payload {
	return Payload{
		"product_id":    c.ProductID,
		"image_key":     c.ImageRef.ObjectKey,
		"image_url":     c.ImageRef.URL,
		"model_version": c.ModelVersion,
		"computed_at":   c.ComputedAt.UTC().UnixNano(),
	}
}
