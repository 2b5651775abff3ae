package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 1 << 20

type fakeSearchUC struct {
	searchErr   error
	compareErr  error
	available   bool
	lastReq     *usecase.SearchReq
	lastTextReq *usecase.TextSearchReq
}

func (f *fakeSearchUC) Search(_ context.Context, req *usecase.SearchReq, _ usecase.ProgressReporter) (*usecase.SearchRes, error) {
	f.lastReq = req
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &usecase.SearchRes{
		SearchID: "s-1",
		Summary:  "Found 1 similar products",
		Scanned:  3,
		Skipped:  1,
		Results: []usecase.ResultItem{{
			ProductID:      "p1",
			Name:           "Runner",
			CategoryName:   "Shoes",
			Price:          499900,
			PriceFormatted: "₹4,999",
			Similarity:     0.73,
			MatchLabel:     "73% match",
		}},
	}, nil
}

func (f *fakeSearchUC) Compare(_ context.Context, req *usecase.CompareReq) (*usecase.CompareRes, error) {
	if f.compareErr != nil {
		return nil, f.compareErr
	}
	if req.First == nil || req.Second == nil {
		return nil, e.NewUploadError("Please select two images to compare.", e.ErrNoImages)
	}
	return &usecase.CompareRes{Similarity: 0.8, Similar: true, Threshold: 0.5, MatchLabel: "80% match"}, nil
}

func (f *fakeSearchUC) Availability(context.Context) *usecase.AvailabilityRes {
	if !f.available {
		return &usecase.AvailabilityRes{Message: msgModelUnavailable}
	}
	return &usecase.AvailabilityRes{Available: true, Message: "Visual search is available", ModelVersion: "m@1"}
}

func (f *fakeSearchUC) ValidateUpload(upload *domain.Upload) error {
	if upload == nil {
		return e.NewUploadError("Please select an image to search.", e.ErrNoImages)
	}
	if !domain.IsSupportedImageType(upload.MimeType) {
		return e.NewUploadError(usecase.ReasonInvalidType, e.ErrUnsupportedMediaType)
	}
	if upload.Size > testMaxUpload {
		return e.NewUploadError(usecase.ReasonTooLarge, e.ErrFileTooLarge)
	}
	return nil
}

func (f *fakeSearchUC) TextSearch(_ context.Context, req *usecase.TextSearchReq) (*usecase.TextSearchRes, error) {
	f.lastTextReq = req
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, e.Wrap("fake", e.ErrEmptyQuery)
	}
	return &usecase.TextSearchRes{
		Summary: "Found 1 product",
		Results: []usecase.ResultItem{{
			ProductID:      "p1",
			Name:           "Runner",
			CategoryName:   "Shoes",
			Price:          499900,
			PriceFormatted: "₹4,999",
		}},
	}, nil
}

type fakeSessions struct {
	sessions map[string]*usecase.SessionSnapshot
}

func (f *fakeSessions) StartSession(*usecase.SearchReq) (string, error) {
	return "sess-1", nil
}

func (f *fakeSessions) GetSession(id string) (*usecase.SessionSnapshot, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, e.Wrap("fake", e.ErrSessionNotFound)
	}
	return s, nil
}

func (f *fakeSessions) CancelSession(id string) error {
	if _, ok := f.sessions[id]; !ok {
		return e.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func newTestRouter(uc *fakeSearchUC, sessions *fakeSessions) http.Handler {
	mux := chi.NewRouter()
	NewRouter(mux, testMaxUpload, logger.NewNop()).Init(uc, sessions)
	return mux
}

type filePart struct {
	field, name, mime string
	data              []byte
}

func multipartBody(t *testing.T, parts ...filePart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, p.field, p.name))
		h.Set("Content-Type", p.mime)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(t *testing.T, h http.Handler, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestVisualSearch_OK(t *testing.T) {
	uc := &fakeSearchUC{}
	body, ct := multipartBody(t, filePart{"image", "shoe.png", "image/png", []byte("png-bytes")})

	rec := doRequest(t, newTestRouter(uc, &fakeSessions{}), http.MethodPost, "/api/v1/search/visual?sort=price-low&limit=5", body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SearchResponse](t, rec)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "73% match", resp.Results[0].MatchLabel)
	assert.Equal(t, "₹4,999", resp.Results[0].PriceFormatted)
	assert.Equal(t, domain.SortByPriceLow, uc.lastReq.Sort)
	assert.Equal(t, 5, uc.lastReq.Limit)
	assert.Equal(t, "shoe.png", uc.lastReq.Upload.Name)
}

func TestVisualSearch_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		parts    []filePart
		ct       string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "unsupported type",
			target:   "/api/v1/search/visual",
			parts:    []filePart{{"image", "a.gif", "image/gif", []byte("GIF89a")}},
			wantCode: http.StatusBadRequest,
			wantMsg:  usecase.ReasonInvalidType,
		},
		{
			name:     "too large",
			target:   "/api/v1/search/visual",
			parts:    []filePart{{"image", "big.png", "image/png", bytes.Repeat([]byte{1}, testMaxUpload+10)}},
			wantCode: http.StatusBadRequest,
			wantMsg:  usecase.ReasonTooLarge,
		},
		{
			name:     "no image",
			target:   "/api/v1/search/visual",
			parts:    []filePart{{"other", "a.png", "image/png", []byte("x")}},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Please select an image to search.",
		},
		{
			name:     "bad sort",
			target:   "/api/v1/search/visual?sort=random",
			parts:    []filePart{{"image", "a.png", "image/png", []byte("x")}},
			wantCode: http.StatusBadRequest,
			wantMsg:  e.ErrInvalidSortMode.Error(),
		},
		{
			name:     "bad limit",
			target:   "/api/v1/search/visual?limit=-1",
			parts:    []filePart{{"image", "a.png", "image/png", []byte("x")}},
			wantCode: http.StatusBadRequest,
			wantMsg:  e.ErrInvalidLimit.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeSearchUC{}
			body, ct := multipartBody(t, tt.parts...)

			rec := doRequest(t, newTestRouter(uc, &fakeSessions{}), http.MethodPost, tt.target, body, ct)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, decode[ErrorResponse](t, rec).Message)
			assert.Nil(t, uc.lastReq, "search must not start")
		})
	}
}

func TestVisualSearch_NotMultipart(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSearchUC{}, &fakeSessions{}), http.MethodPost, "/api/v1/search/visual",
		bytes.NewBufferString(`{"image":"..."}`), "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrExpectedMultipart.Error(), decode[ErrorResponse](t, rec).Message)
}

func TestVisualSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
	}{
		{e.Wrap("op", e.ErrModelUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %w", e.ErrQueryExtractionFailed, e.ErrImageDecode), http.StatusUnprocessableEntity},
		{e.ErrRenderingUnavailable, http.StatusInternalServerError},
		{fmt.Errorf("%w: %w", e.ErrSearchFailed, context.DeadlineExceeded), http.StatusInternalServerError},
		{fmt.Errorf("%w: %w", e.ErrSearchCancelled, context.Canceled), StatusClientClosedRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			body, ct := multipartBody(t, filePart{"image", "a.webp", "image/webp", []byte("x")})
			rec := doRequest(t, newTestRouter(&fakeSearchUC{searchErr: tt.err}, &fakeSessions{}),
				http.MethodPost, "/api/v1/search/visual", body, ct)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode, decode[ErrorResponse](t, rec).Code)
		})
	}
}

func TestSessions(t *testing.T) {
	now := time.Now()
	sessions := &fakeSessions{sessions: map[string]*usecase.SessionSnapshot{
		"running": {ID: "running", State: domain.StateScanningCatalog, Progress: 63.3, Status: "Comparing with catalog 2/6", CreatedAt: now, UpdatedAt: now},
		"failed":  {ID: "failed", State: domain.StateError, Progress: 20, Err: e.ErrModelUnavailable, CreatedAt: now, UpdatedAt: now},
	}}
	router := newTestRouter(&fakeSearchUC{}, sessions)

	body, ct := multipartBody(t, filePart{"image", "a.png", "image/png", []byte("x")})
	rec := doRequest(t, router, http.MethodPost, "/api/v1/search/visual/sessions", body, ct)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "sess-1", decode[SessionCreatedResponse](t, rec).SessionID)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/search/visual/sessions/running", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	running := decode[SessionResponse](t, rec)
	assert.Equal(t, "scanning_catalog", running.State)
	assert.InDelta(t, 63.3, running.Progress, 1e-9)
	assert.Nil(t, running.Error)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/search/visual/sessions/failed", nil, "")
	failed := decode[SessionResponse](t, rec)
	require.NotNil(t, failed.Error)
	assert.Equal(t, http.StatusServiceUnavailable, failed.Error.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/search/visual/sessions/running", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/search/visual/sessions/running", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/search/visual/sessions/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompare(t *testing.T) {
	router := newTestRouter(&fakeSearchUC{}, &fakeSessions{})

	body, ct := multipartBody(t,
		filePart{"first", "a.png", "image/png", []byte("a")},
		filePart{"second", "b.jpg", "image/jpeg", []byte("b")},
	)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/search/visual/compare", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[CompareResponse](t, rec)
	assert.True(t, resp.Similar)
	assert.Equal(t, 0.5, resp.Threshold)

	body, ct = multipartBody(t, filePart{"first", "a.png", "image/png", []byte("a")})
	rec = doRequest(t, router, http.MethodPost, "/api/v1/search/visual/compare", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailability(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSearchUC{}, &fakeSessions{}), http.MethodGet, "/api/v1/search/visual/availability", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[AvailabilityResponse](t, rec)
	assert.False(t, resp.Available)
	assert.Equal(t, msgModelUnavailable, resp.Message)

	rec = doRequest(t, newTestRouter(&fakeSearchUC{available: true}, &fakeSessions{}), http.MethodGet, "/api/v1/search/visual/availability", nil, "")
	assert.True(t, decode[AvailabilityResponse](t, rec).Available)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeSearchUC{}, &fakeSessions{})
	_ = doRequest(t, router, http.MethodGet, "/api/v1/search/visual/availability", nil, "")

	rec := doRequest(t, router, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestTextSearch_OK(t *testing.T) {
	uc := &fakeSearchUC{}

	rec := doRequest(t, newTestRouter(uc, &fakeSessions{}), http.MethodGet, "/api/v1/search/text?q=run&sort=price-high&limit=4", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[TextSearchResponse](t, rec)
	assert.Equal(t, "Found 1 product", resp.Summary)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Runner", resp.Results[0].Name)
	assert.NotContains(t, rec.Body.String(), "match_label")

	require.NotNil(t, uc.lastTextReq)
	assert.Equal(t, "run", uc.lastTextReq.Query)
	assert.Equal(t, domain.SortByPriceHigh, uc.lastTextReq.Sort)
	assert.Equal(t, 4, uc.lastTextReq.Limit)
}

func TestTextSearch_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"empty query", "/api/v1/search/text?q=", nil, http.StatusBadRequest, e.ErrEmptyQuery.Error()},
		{"bad sort", "/api/v1/search/text?q=run&sort=random", nil, http.StatusBadRequest, e.ErrInvalidSortMode.Error()},
		{"bad limit", "/api/v1/search/text?q=run&limit=x", nil, http.StatusBadRequest, e.ErrInvalidLimit.Error()},
		{"catalog down", "/api/v1/search/text?q=run", fmt.Errorf("%w: %w", e.ErrSearchFailed, context.DeadlineExceeded), http.StatusInternalServerError, msgSearchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(&fakeSearchUC{searchErr: tt.err}, &fakeSessions{}), http.MethodGet, tt.target, nil, "")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, decode[ErrorResponse](t, rec).Message)
		})
	}
}
