package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/jimlawless/whereami"
)

// StatusClientClosedRequest — клиент отменил запрос до ответа.
const StatusClientClosedRequest = 499

const (
	msgModelUnavailable = "Visual search is currently unavailable. Please use text search instead."
	msgQueryExtraction  = "Could not analyze the uploaded image. Please try a different image."
	msgRendering        = "Image processing is not available on this server."
	msgSearchFailed     = "Failed to perform visual search. Please try again."
	msgCancelled        = "Visual search cancelled."
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	if reason, ok := e.UploadReason(err); ok {
		return http.StatusBadRequest, reason
	}

	switch {
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrInvalidSortMode):
		return http.StatusBadRequest, e.ErrInvalidSortMode.Error()
	case errors.Is(err, e.ErrInvalidLimit):
		return http.StatusBadRequest, e.ErrInvalidLimit.Error()
	case errors.Is(err, e.ErrNoImages):
		return http.StatusBadRequest, e.ErrNoImages.Error()
	case errors.Is(err, e.ErrEmptyQuery):
		return http.StatusBadRequest, e.ErrEmptyQuery.Error()
	case errors.Is(err, e.ErrSessionNotFound):
		return http.StatusNotFound, e.ErrSessionNotFound.Error()
	case errors.Is(err, e.ErrSearchCancelled):
		return StatusClientClosedRequest, msgCancelled
	case errors.Is(err, e.ErrModelUnavailable):
		return http.StatusServiceUnavailable, msgModelUnavailable
	case errors.Is(err, e.ErrQueryExtractionFailed):
		return http.StatusUnprocessableEntity, msgQueryExtraction
	case errors.Is(err, e.ErrRenderingUnavailable):
		return http.StatusInternalServerError, msgRendering
	case errors.Is(err, e.ErrSearchFailed):
		return http.StatusInternalServerError, msgSearchFailed
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return e.NewUploadError(usecase.ReasonTooLarge, e.ErrFileTooLarge)
		}
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}

	return nil
}

// readUpload читает файл из поля формы. Читается не больше maxSize+1 байт:
// этого достаточно, чтобы проверка размера отклонила файл.
func readUpload(r *http.Request, field string, maxSize int64) (*domain.Upload, error) {
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	data, err := readFile(fh, maxSize)
	if err != nil {
		return nil, err
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data[:min(len(data), 512)])
	}

	return domain.NewUpload(data, mimeType, max(fh.Size, int64(len(data))), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInternalServerError)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInternalServerError)
	}

	return data, nil
}

// parseSearchParams разбирает sort и limit из query-строки.
func parseSearchParams(r *http.Request) (domain.SortMode, int, error) {
	q := r.URL.Query()

	sort, ok := domain.ParseSortMode(q.Get("sort"))
	if !ok {
		return "", 0, e.Wrap(q.Get("sort"), e.ErrInvalidSortMode)
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return "", 0, e.Wrap(raw, e.ErrInvalidLimit)
		}
		limit = n
	}

	return sort, limit, nil
}
