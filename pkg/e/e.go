package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки загрузки пользователя (400 Bad Request)
	ErrInvalidUpload        = fmt.Errorf("invalid upload")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoImages             = fmt.Errorf("no image provided")
	ErrInvalidSortMode      = fmt.Errorf("invalid sort mode")
	ErrInvalidLimit         = fmt.Errorf("invalid limit")
	ErrEmptyQuery           = fmt.Errorf("search query is empty")

	// Ошибки модели и извлечения признаков
	ErrModelUnavailable       = fmt.Errorf("image recognition model unavailable")
	ErrInferenceFailed        = fmt.Errorf("inference failed")
	ErrImageDecode            = fmt.Errorf("%w: image decode failed", ErrInferenceFailed)
	ErrRenderingUnavailable   = fmt.Errorf("rendering surface unavailable")
	ErrQueryExtractionFailed  = fmt.Errorf("query feature extraction failed")
	ErrVectorEmbeddingEmpty   = fmt.Errorf("vector embedding is empty")
	ErrVectorDimensionInvalid = fmt.Errorf("vector dimension mismatch")

	// Ошибки каталога
	ErrNoCatalogImage   = fmt.Errorf("product has no image")
	ErrImageFetchFailed = fmt.Errorf("image fetch failed")
	ErrImageTooLarge    = fmt.Errorf("image exceeds size limit")

	// Поиск и сессии
	ErrSearchFailed    = fmt.Errorf("visual search failed, please try again")
	ErrSearchCancelled = fmt.Errorf("visual search cancelled")
	ErrSessionNotFound = fmt.Errorf("search session not found")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// UploadError описывает отклонённую загрузку с причиной, пригодной для показа пользователю.
type UploadError struct {
	Reason string
	Cause  error
}

func NewUploadError(reason string, cause error) *UploadError {
	return &UploadError{Reason: reason, Cause: cause}
}

func (u *UploadError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidUpload.Error(), u.Reason)
}

// Unwrap позволяет проверять ошибку и через ErrInvalidUpload, и через конкретную причину.
func (u *UploadError) Unwrap() []error {
	if u.Cause == nil {
		return []error{ErrInvalidUpload}
	}

	return []error{ErrInvalidUpload, u.Cause}
}

// UploadReason возвращает текст причины, если err содержит UploadError.
func UploadReason(err error) (string, bool) {
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.Reason, true
	}

	return "", false
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
