package usecase

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
)

const (
	tagBroken    = "broken"
	tagNoSurface = "no-surface"
)

// taggedImage несёт байты загрузки как метку, по которой fakeExtractor выбирает вектор.
type taggedImage struct {
	*image.RGBA
	tag string
}

type fakePreprocessor struct{}

func (fakePreprocessor) Prepare(data []byte) (image.Image, error) {
	switch string(data) {
	case tagBroken:
		return nil, e.ErrImageDecode
	case tagNoSurface:
		return nil, e.ErrRenderingUnavailable
	}

	return taggedImage{RGBA: image.NewRGBA(image.Rect(0, 0, 1, 1)), tag: string(data)}, nil
}

type fakeExtractor struct {
	vectors      map[string]domain.Embedding
	availableErr error
	available    atomic.Int32
	extracted    atomic.Int32
}

func (f *fakeExtractor) Available(context.Context) error {
	f.available.Add(1)
	return f.availableErr
}

func (f *fakeExtractor) Extract(ctx context.Context, img image.Image) (domain.Embedding, error) {
	f.extracted.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tagged, ok := img.(taggedImage)
	if !ok {
		return nil, e.ErrInferenceFailed
	}

	vec, ok := f.vectors[tagged.tag]
	if !ok {
		return nil, e.ErrInferenceFailed
	}

	return vec.Clone(), nil
}

func (f *fakeExtractor) ModelVersion() string {
	return "test-model@1"
}

// fakeFetcher отдаёт изображения по URL; hook вызывается перед каждой загрузкой.
type fakeFetcher struct {
	images map[string][]byte
	calls  atomic.Int32
	hook   func(ctx context.Context, ref domain.ImageRef) error
}

func (f *fakeFetcher) Fetch(ctx context.Context, ref domain.ImageRef) ([]byte, error) {
	f.calls.Add(1)
	if f.hook != nil {
		if err := f.hook(ctx, ref); err != nil {
			return nil, err
		}
	}

	data, ok := f.images[ref.URL]
	if !ok {
		return nil, e.ErrImageFetchFailed
	}

	return data, nil
}

type fakeCatalogRepo struct {
	products []domain.Product
	err      error
	calls    atomic.Int32
}

func (f *fakeCatalogRepo) ListProducts(context.Context) ([]domain.Product, error) {
	f.calls.Add(1)
	return f.products, f.err
}

type fakeCatalogCache struct {
	mu       sync.Mutex
	products []domain.Product
	found    bool
	getErr   error
	sets     int
	deletes  int
}

func (f *fakeCatalogCache) GetCatalog(context.Context) ([]domain.Product, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.products, f.found, nil
}

func (f *fakeCatalogCache) SetCatalog(_ context.Context, products []domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
	f.sets++
	return nil
}

func (f *fakeCatalogCache) DeleteCatalog(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = nil
	f.found = false
	f.deletes++
	return nil
}

type fakeSearchRepo struct {
	mu      sync.Mutex
	records []*domain.SearchRecord
	outbox  []*OutboxEvent
}

func (f *fakeSearchRepo) Save(_ context.Context, record *domain.SearchRecord, event *OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	if event != nil {
		f.outbox = append(f.outbox, event)
	}
	return nil
}

func (f *fakeSearchRepo) events() []*OutboxEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*OutboxEvent(nil), f.outbox...)
}

func (f *fakeSearchRepo) saved() []*domain.SearchRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.SearchRecord(nil), f.records...)
}

type fakeEmbeddingRepo struct {
	mu       sync.Mutex
	upserted []domain.CatalogEmbedding
}

func (f *fakeEmbeddingRepo) Upsert(_ context.Context, embeddings []domain.CatalogEmbedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, embeddings...)
	return nil
}

// fakeEncoder запоминает закодированные события; полезная нагрузка — ID поиска.
type fakeEncoder struct {
	mu     sync.Mutex
	events []*SearchEvent
}

func (f *fakeEncoder) EncodeSearchEvent(event *SearchEvent) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return []byte(event.SearchID), nil
}

func (f *fakeEncoder) encoded() []*SearchEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*SearchEvent(nil), f.events...)
}

// progressRecorder собирает все отчёты о прогрессе.
type progressRecorder struct {
	mu      sync.Mutex
	reports []domain.SearchProgress
}

func (r *progressRecorder) Report(p domain.SearchProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, p)
}

func (r *progressRecorder) all() []domain.SearchProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SearchProgress(nil), r.reports...)
}

type testEnv struct {
	uc         *VisualSearchUseCase
	catalog    *fakeCatalogRepo
	cache      *fakeCatalogCache
	history    *fakeSearchRepo
	embeddings *fakeEmbeddingRepo
	extractor  *fakeExtractor
	fetcher    *fakeFetcher
	encoder    *fakeEncoder
}

func product(id, name string, price int64, url string) domain.Product {
	return *domain.NewProduct(id, name, "Shoes", price, domain.ImageRef{URL: url})
}

// newTestEnv: запрос [1,0,0], p1 совпадает, p2 ортогонален, p3 близок к p1.
func newTestEnv() *testEnv {
	extractor := &fakeExtractor{
		vectors: map[string]domain.Embedding{
			"query": {1, 0, 0},
			"p1":    {1, 0, 0},
			"p2":    {0, 1, 0},
			"p3":    {0.9, 0.1, 0},
		},
	}
	fetcher := &fakeFetcher{
		images: map[string][]byte{
			"http://img/p1": []byte("p1"),
			"http://img/p2": []byte("p2"),
			"http://img/p3": []byte("p3"),
		},
	}
	env := &testEnv{
		catalog: &fakeCatalogRepo{products: []domain.Product{
			product("p1", "Runner", 499900, "http://img/p1"),
			product("p2", "Boot", 899900, "http://img/p2"),
			product("p3", "Sneaker", 299900, "http://img/p3"),
		}},
		cache:      &fakeCatalogCache{},
		history:    &fakeSearchRepo{},
		embeddings: &fakeEmbeddingRepo{},
		extractor:  extractor,
		fetcher:    fetcher,
		encoder:    &fakeEncoder{},
	}
	env.uc = NewVisualSearchUC(
		env.catalog,
		env.cache,
		env.history,
		env.embeddings,
		env.extractor,
		fakePreprocessor{},
		env.fetcher,
		env.encoder,
		DefaultOptions(),
		logger.NewNop(),
	)

	return env
}

func pngUpload(tag string) *domain.Upload {
	return domain.NewUpload([]byte(tag), "image/png", int64(len(tag)), tag+".png")
}
