// Package similarity ранжирует эмбеддинги каталога по косинусной близости к запросу.
package similarity

import (
	"math"
	"slices"

	"github.com/DRSN-tech/visual-search/internal/domain"
)

const (
	// DefaultCatalogThreshold — порог отсечения при поиске по каталогу.
	DefaultCatalogThreshold = 0.3
	// DefaultPairwiseThreshold — порог, начиная с которого два изображения считаются похожими.
	DefaultPairwiseThreshold = 0.5
)

// Cosine возвращает dot(a,b) / (|a|*|b|).
// Для векторов разной длины и для нулевой нормы возвращается 0.
func Cosine(a, b domain.Embedding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(score) {
		return 0
	}

	// погрешность float64 может немного вывести значение за [-1, 1]
	return math.Max(-1, math.Min(1, score))
}

// Rank считает близость запроса к каждой записи каталога, оставляет записи со score >= threshold
// и сортирует их по убыванию. При равных score сохраняется порядок каталога.
// Входные данные не изменяются.
func Rank(query domain.Embedding, catalog []domain.CatalogEntry, threshold float64) []domain.SimilarityResult {
	results := make([]domain.SimilarityResult, 0, len(catalog))
	for _, entry := range catalog {
		score := Cosine(query, entry.Embedding)
		if score < threshold {
			continue
		}

		results = append(results, domain.SimilarityResult{
			ProductID: entry.ProductID,
			Score:     score,
		})
	}

	slices.SortStableFunc(results, func(a, b domain.SimilarityResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return results
}

// IsSimilar сообщает, что пара векторов проходит порог threshold.
func IsSimilar(a, b domain.Embedding, threshold float64) (float64, bool) {
	score := Cosine(a, b)
	return score, score >= threshold
}
