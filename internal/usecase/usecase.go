package usecase

import (
	"context"

	"github.com/DRSN-tech/visual-search/internal/domain"
)

// VisualSearchUC — синхронные операции визуального поиска.
type VisualSearchUC interface {
	Search(ctx context.Context, req *SearchReq, reporter ProgressReporter) (*SearchRes, error)
	Compare(ctx context.Context, req *CompareReq) (*CompareRes, error)
	Availability(ctx context.Context) *AvailabilityRes
	ValidateUpload(upload *domain.Upload) error
	TextSearch(ctx context.Context, req *TextSearchReq) (*TextSearchRes, error)
}

// SearchSessionUC — асинхронные поиски с опрашиваемым прогрессом и отменой.
type SearchSessionUC interface {
	StartSession(req *SearchReq) (string, error)
	GetSession(id string) (*SessionSnapshot, error)
	CancelSession(id string) error
}
