package usecase

import (
	"context"
	"image"

	"github.com/DRSN-tech/visual-search/internal/domain"
)

// FeatureExtractor превращает подготовленное изображение в эмбеддинг.
type FeatureExtractor interface {
	// Available выполняет (однократную) загрузку модели и возвращает e.ErrModelUnavailable,
	// если модель недоступна в этом процессе.
	Available(ctx context.Context) error
	Extract(ctx context.Context, img image.Image) (domain.Embedding, error)
	ModelVersion() string
}

// ImagePreprocessor декодирует байты изображения и приводит их к входной геометрии модели.
type ImagePreprocessor interface {
	Prepare(data []byte) (image.Image, error)
}

// ImageFetcher загружает изображение товара каталога.
type ImageFetcher interface {
	Fetch(ctx context.Context, ref domain.ImageRef) ([]byte, error)
}

// SearchEventEncoder сериализует событие поиска в полезную нагрузку сообщения брокера.
type SearchEventEncoder interface {
	EncodeSearchEvent(event *SearchEvent) ([]byte, error)
}

// MessageProducer отправляет готовые сообщения в брокер.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// ProgressReporter получает прогресс поиска. Вызывается из горутины поиска.
type ProgressReporter interface {
	Report(progress domain.SearchProgress)
}

// ProgressFunc — адаптер функции к ProgressReporter.
type ProgressFunc func(progress domain.SearchProgress)

func (f ProgressFunc) Report(progress domain.SearchProgress) {
	f(progress)
}
