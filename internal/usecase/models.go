package usecase

import (
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/google/uuid"
)

// SEARCH

// SearchReq — запрос визуального поиска по загруженному изображению.
type SearchReq struct {
	Upload *domain.Upload
	Sort   domain.SortMode
	Limit  int // 0: лимит из конфигурации
}

// SearchRes — итог поиска: ранжированные товары и текст для пользователя.
type SearchRes struct {
	SearchID     string
	Results      []ResultItem
	Summary      string
	Scanned      int // товаров с успешно посчитанным эмбеддингом
	Skipped      int // товаров без изображения или с ошибкой обработки
	ModelVersion string
}

// ResultItem — найденный товар с оценкой близости.
type ResultItem struct {
	ProductID      string
	Name           string
	CategoryName   string
	Price          int64
	PriceFormatted string
	ImageURL       string
	Similarity     float64
	MatchLabel     string // "73% match"
}

// TEXT SEARCH

// TextSearchReq — поиск по подстроке в названии товара.
type TextSearchReq struct {
	Query string
	Sort  domain.SortMode // similarity трактуется как name
	Limit int
}

type TextSearchRes struct {
	Results []ResultItem
	Summary string
}

// COMPARE

// CompareReq — попарное сравнение двух изображений.
type CompareReq struct {
	First  *domain.Upload
	Second *domain.Upload
}

type CompareRes struct {
	Similarity float64
	Similar    bool
	Threshold  float64
	MatchLabel string
}

// AVAILABILITY

type AvailabilityRes struct {
	Available    bool
	Message      string
	ModelVersion string
}

// SESSIONS

// SessionSnapshot — состояние асинхронного поиска на момент запроса.
type SessionSnapshot struct {
	ID        string
	State     domain.SearchState
	Progress  float64
	Status    string
	Result    *SearchRes
	Err       error
	CreatedAt time.Time
	UpdatedAt time.Time
}

// INFRASTRUCTURE

// SearchEvent — событие завершённого поиска для аналитики.
type SearchEvent struct {
	SearchID      string
	ResultCount   int
	TopProductIDs []string
	Scanned       int
	Skipped       int
	ModelVersion  string
	Duration      time.Duration
	CreatedAt     time.Time
}

// OutboxStatus — статус события в таблице outbox.
type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
)

type OutboxEventType string

const SearchCompleted OutboxEventType = "VISUAL_SEARCH_COMPLETED"

// OutboxEvent — сообщение, ожидающее отправки в брокер.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	SearchID    string // ключ сообщения
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// MAPPERS

func NewSearchReq(upload *domain.Upload, sort domain.SortMode, limit int) *SearchReq {
	return &SearchReq{
		Upload: upload,
		Sort:   sort,
		Limit:  limit,
	}
}

func NewTextSearchReq(query string, sort domain.SortMode, limit int) *TextSearchReq {
	return &TextSearchReq{
		Query: query,
		Sort:  sort,
		Limit: limit,
	}
}

func NewCompareReq(first, second *domain.Upload) *CompareReq {
	return &CompareReq{
		First:  first,
		Second: second,
	}
}

func NewSearchEvent(searchID string, res *SearchRes, duration time.Duration, topN int) *SearchEvent {
	top := make([]string, 0, min(topN, len(res.Results)))
	for i := 0; i < len(res.Results) && i < topN; i++ {
		top = append(top, res.Results[i].ProductID)
	}

	return &SearchEvent{
		SearchID:      searchID,
		ResultCount:   len(res.Results),
		TopProductIDs: top,
		Scanned:       res.Scanned,
		Skipped:       res.Skipped,
		ModelVersion:  res.ModelVersion,
		Duration:      duration,
		CreatedAt:     time.Now().UTC(),
	}
}

func NewOutboxEvent(searchID string, eventType OutboxEventType, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		SearchID:  searchID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
