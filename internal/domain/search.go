package domain

import "time"

// SearchState — шаг конечного автомата одного визуального поиска.
type SearchState string

const (
	StateIdle             SearchState = "idle"
	StateValidatingUpload SearchState = "validating_upload"
	StateExtractingQuery  SearchState = "extracting_query"
	StateScanningCatalog  SearchState = "scanning_catalog"
	StateRanking          SearchState = "ranking"
	StateDone             SearchState = "done"
	StateError            SearchState = "error"
)

// IsTerminal сообщает, что поиск завершён (успешно или с ошибкой).
func (s SearchState) IsTerminal() bool {
	return s == StateDone || s == StateError
}

// SearchProgress — прогресс поиска для UI. Percent в [0, 100] и не убывает в пределах поиска.
type SearchProgress struct {
	State   SearchState
	Percent float64
	Status  string
}

// SimilarityResult — товар и его косинусная близость к запросу.
type SimilarityResult struct {
	ProductID string
	Score     float64
}

// SortMode — порядок выдачи результатов.
type SortMode string

const (
	SortBySimilarity SortMode = "similarity"
	SortByPriceLow   SortMode = "price-low"
	SortByPriceHigh  SortMode = "price-high"
	SortByName       SortMode = "name"
)

// ParseSortMode разбирает режим сортировки; пустая строка означает сортировку по близости.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case "", SortBySimilarity:
		return SortBySimilarity, true
	case SortByPriceLow, SortByPriceHigh, SortByName:
		return SortMode(s), true
	default:
		return "", false
	}
}

// SearchRecord — запись истории поиска.
type SearchRecord struct {
	ID           string
	Status       SearchState
	UploadName   string
	UploadSize   int64
	Scanned      int
	Skipped      int
	ModelVersion string
	Threshold    float64
	Duration     time.Duration
	Results      []SimilarityResult
	CreatedAt    time.Time
}
