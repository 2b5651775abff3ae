package converter

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/google/uuid"
)

// ProductConverter преобразует строки каталога в доменные товары.
type ProductConverter interface {
	ToEntity(model *ProductModel) domain.Product
	ToArrEntity(models []*ProductModel) []domain.Product
}

// SearchConverter раскладывает запись истории поиска по таблицам.
type SearchConverter interface {
	ToModel(entity *domain.SearchRecord) (*SearchModel, error)
	ToResultModels(entity *domain.SearchRecord) ([]*SearchResultModel, error)
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) (*OutboxEventModel, error)
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

func (productConverter) ToEntity(model *ProductModel) domain.Product {
	return *domain.NewProduct(
		model.ID,
		model.Name,
		model.CategoryName,
		model.Price,
		domain.ImageRef{ObjectKey: model.ImageKey, URL: model.ImageURL},
	)
}

func (c productConverter) ToArrEntity(models []*ProductModel) []domain.Product {
	out := make([]domain.Product, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}
	return out
}

type searchConverter struct{}

func NewSearchConverter() SearchConverter {
	return searchConverter{}
}

func (searchConverter) ToModel(entity *domain.SearchRecord) (*SearchModel, error) {
	id, err := ConvertUUID(entity.ID)
	if err != nil {
		return nil, err
	}

	return &SearchModel{
		ID:           id,
		Status:       string(entity.Status),
		UploadName:   entity.UploadName,
		UploadSize:   entity.UploadSize,
		Scanned:      entity.Scanned,
		Skipped:      entity.Skipped,
		ModelVersion: entity.ModelVersion,
		Threshold:    entity.Threshold,
		DurationMs:   entity.Duration.Milliseconds(),
		CreatedAt:    ConvertTime(entity.CreatedAt),
	}, nil
}

// ToResultModels нумерует результаты с единицы в порядке выдачи.
func (searchConverter) ToResultModels(entity *domain.SearchRecord) ([]*SearchResultModel, error) {
	id, err := ConvertUUID(entity.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*SearchResultModel, 0, len(entity.Results))
	for i, r := range entity.Results {
		out = append(out, &SearchResultModel{
			SearchID:   id,
			Rank:       i + 1,
			ProductID:  r.ProductID,
			Similarity: r.Score,
		})
	}
	return out, nil
}

type outboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return outboxEventConverter{}
}

func (outboxEventConverter) ToModel(entity *usecase.OutboxEvent) (*OutboxEventModel, error) {
	eventID, err := ConvertUUID(entity.EventID)
	if err != nil {
		return nil, err
	}

	searchID, err := ConvertUUID(entity.SearchID)
	if err != nil {
		return nil, err
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     eventID,
		EventType:   string(entity.EventType),
		SearchID:    searchID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   ConvertTime(entity.CreatedAt),
		ProcessedAt: ConvertPointerTime(entity.ProcessedAt),
	}, nil
}

func (outboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID.String(),
		EventType:   usecase.OutboxEventType(model.EventType),
		SearchID:    model.SearchID.String(),
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: ConvertPointerTime(model.ProcessedAt),
	}
}

func (c outboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}
	return out
}

// ConvertTime приводит время к UTC перед записью.
func ConvertTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func ConvertPointerTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// ConvertUUID разбирает строковый идентификатор для колонок типа uuid.
func ConvertUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return id, nil
}
