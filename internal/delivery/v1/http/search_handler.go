package http

import (
	"errors"
	"net/http"

	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const maxMemory = 32 << 20

type SearchHandler struct {
	searchUC  usecase.VisualSearchUC
	sessionUC usecase.SearchSessionUC
	maxUpload int64
	logger    logger.Logger
}

func NewSearchHandler(searchUC usecase.VisualSearchUC, sessionUC usecase.SearchSessionUC, maxUpload int64, logger logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC:  searchUC,
		sessionUC: sessionUC,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// visualSearch
//
//	@Summary		Визуальный поиск товаров
//	@Description	Ищет в каталоге товары, похожие на загруженное изображение
//	@Tags			search
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file			true	"Изображение (jpeg, png, webp, до 10 МБ)"
//	@Param			sort	query		string			false	"similarity | price-low | price-high | name"
//	@Param			limit	query		int				false	"Максимум результатов"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	ErrorResponse	"Некорректная загрузка"
//	@Failure		422		{object}	ErrorResponse	"Не удалось обработать изображение"
//	@Failure		503		{object}	ErrorResponse	"Модель недоступна"
//	@Router			/search/visual [post]
func (h *SearchHandler) visualSearch(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSearchReq(w, r)
	if err != nil {
		h.logger.Warnf("%d visual search rejected: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	res, err := h.searchUC.Search(r.Context(), req, nil)
	if err != nil {
		h.logFailure(err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}

// startSession
//
//	@Summary		Асинхронный визуальный поиск
//	@Description	Запускает поиск в фоне; прогресс доступен по session_id
//	@Tags			search
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file			true	"Изображение"
//	@Param			sort	query		string			false	"Режим сортировки"
//	@Param			limit	query		int				false	"Максимум результатов"
//	@Success		202		{object}	SessionCreatedResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/search/visual/sessions [post]
func (h *SearchHandler) startSession(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSearchReq(w, r)
	if err != nil {
		h.logger.Warnf("%d visual search session rejected: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	id, err := h.sessionUC.StartSession(req)
	if err != nil {
		h.logFailure(err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, SessionCreatedResponse{SessionID: id})
}

// getSession
//
//	@Summary	Состояние асинхронного поиска
//	@Tags		search
//	@Produce	json
//	@Param		id	path		string	true	"ID сессии"
//	@Success	200	{object}	SessionResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/search/visual/sessions/{id} [get]
func (h *SearchHandler) getSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessionUC.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSessionResponse(snapshot))
}

// cancelSession
//
//	@Summary	Отмена асинхронного поиска
//	@Tags		search
//	@Param		id	path	string	true	"ID сессии"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/search/visual/sessions/{id} [delete]
func (h *SearchHandler) cancelSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionUC.CancelSession(chi.URLParam(r, "id")); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// compare
//
//	@Summary		Сравнение двух изображений
//	@Description	Косинусная близость двух изображений и признак похожести (порог 0.5)
//	@Tags			search
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			first	formData	file	true	"Первое изображение"
//	@Param			second	formData	file	true	"Второе изображение"
//	@Success		200		{object}	CompareResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/search/visual/compare [post]
func (h *SearchHandler) compare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUpload+maxMemory)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		WriteError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	first, err := readUpload(r, "first", h.maxUpload)
	if err != nil {
		WriteError(w, err)
		return
	}

	second, err := readUpload(r, "second", h.maxUpload)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.searchUC.Compare(r.Context(), usecase.NewCompareReq(first, second))
	if err != nil {
		h.logFailure(err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CompareResponse{
		Similarity: res.Similarity,
		Similar:    res.Similar,
		Threshold:  res.Threshold,
		MatchLabel: res.MatchLabel,
	})
}

// textSearch
//
//	@Summary		Поиск товаров по названию
//	@Description	Подстрока в названии без учёта регистра; без sort выдача упорядочена по названию
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string			true	"Строка поиска"
//	@Param			sort	query		string			false	"price-low | price-high | name"
//	@Param			limit	query		int				false	"Максимум результатов"
//	@Success		200		{object}	TextSearchResponse
//	@Failure		400		{object}	ErrorResponse	"Пустой запрос или неверные параметры"
//	@Failure		500		{object}	ErrorResponse	"Каталог недоступен"
//	@Router			/search/text [get]
func (h *SearchHandler) textSearch(w http.ResponseWriter, r *http.Request) {
	sort, limit, err := parseSearchParams(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.searchUC.TextSearch(r.Context(), usecase.NewTextSearchReq(r.URL.Query().Get("q"), sort, limit))
	if err != nil {
		code, _ := ToHTTPResponse(err)
		if code >= http.StatusInternalServerError {
			h.logger.Errorf(err, "%d text search failed", code)
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, TextSearchResponse{
		Summary: res.Summary,
		Results: toResultDTOs(res.Results),
	})
}

// availability
//
//	@Summary	Доступность визуального поиска
//	@Tags		search
//	@Produce	json
//	@Success	200	{object}	AvailabilityResponse
//	@Router		/search/visual/availability [get]
func (h *SearchHandler) availability(w http.ResponseWriter, r *http.Request) {
	res := h.searchUC.Availability(r.Context())

	WriteSuccess(w, http.StatusOK, AvailabilityResponse{
		Available:    res.Available,
		Message:      res.Message,
		ModelVersion: res.ModelVersion,
	})
}

func (h *SearchHandler) parseSearchReq(w http.ResponseWriter, r *http.Request) (*usecase.SearchReq, error) {
	sort, limit, err := parseSearchParams(r)
	if err != nil {
		return nil, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+maxMemory)
	if err := ensureMultipartForm(r, maxMemory); err != nil {
		return nil, err
	}
	defer r.MultipartForm.RemoveAll()

	upload, err := readUpload(r, "image", h.maxUpload)
	if err != nil {
		return nil, err
	}

	req := usecase.NewSearchReq(upload, sort, limit)
	if err := h.searchUC.ValidateUpload(req.Upload); err != nil {
		return nil, err
	}

	return req, nil
}

func (h *SearchHandler) logFailure(err error) {
	code, _ := ToHTTPResponse(err)
	switch {
	case errors.Is(err, e.ErrSearchCancelled):
		h.logger.Debugf("visual search cancelled by client")
	case code >= http.StatusInternalServerError:
		h.logger.Errorf(err, "%d visual search failed", code)
	default:
		h.logger.Warnf("%d visual search failed: %v", code, err)
	}
}
