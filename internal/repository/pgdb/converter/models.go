package converter

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel — строка выборки каталога: товар вместе с названием категории.
type ProductModel struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	CategoryName string `db:"category_name"`
	Price        int64  `db:"price"`
	ImageKey     string `db:"image_key"`
	ImageURL     string `db:"image_url"`
}

// SearchModel представляет запись таблицы visual_searches.
type SearchModel struct {
	ID           uuid.UUID `db:"id"`
	Status       string    `db:"status"`
	UploadName   string    `db:"upload_name"`
	UploadSize   int64     `db:"upload_size"`
	Scanned      int       `db:"scanned"`
	Skipped      int       `db:"skipped"`
	ModelVersion string    `db:"model_version"`
	Threshold    float64   `db:"threshold"`
	DurationMs   int64     `db:"duration_ms"`
	CreatedAt    time.Time `db:"created_at"`
}

// SearchResultModel представляет запись таблицы visual_search_results.
type SearchResultModel struct {
	SearchID   uuid.UUID `db:"search_id"`
	Rank       int       `db:"rank"`
	ProductID  string    `db:"product_id"`
	Similarity float64   `db:"similarity"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	EventType   string     `db:"event_type"`
	SearchID    uuid.UUID  `db:"search_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
