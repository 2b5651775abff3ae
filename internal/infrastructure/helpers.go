package infrastructure

import (
	"bytes"
	"net/http"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/pkg/e"
)

// DetectImageType определяет MIME-тип изображения по сигнатуре.
// Поддерживает jpeg, png, webp. Возвращает ошибку e.ErrUnsupportedMediaType для остальных данных.
func DetectImageType(data []byte) (string, error) {
	if isWebP(data) {
		return "image/webp", nil
	}

	mime := http.DetectContentType(data)
	if !domain.IsSupportedImageType(mime) {
		return mime, e.ErrUnsupportedMediaType
	}

	return mime, nil
}

// isWebP проверяет RIFF-контейнер с типом WEBP.
func isWebP(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))
}
