package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"mime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/metrics"
	"github.com/DRSN-tech/visual-search/pkg/currency"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/DRSN-tech/visual-search/pkg/similarity"
	"github.com/google/uuid"
)

// Причины отклонения загрузки, показываемые пользователю.
const (
	ReasonInvalidType = "Invalid file type. Please upload a JPEG, PNG, or WebP image."
	ReasonTooLarge    = "File size too large. Please upload an image smaller than 10MB."

	backgroundTimeout = 5 * time.Second
	defaultEventTopN  = 10
)

// Options — настройки визуального поиска.
type Options struct {
	CatalogThreshold  float64
	PairwiseThreshold float64
	MaxUploadBytes    int64
	MaxResults        int // 0: без ограничения
	EventTopN         int // сколько ID лучших товаров класть в событие
}

// DefaultOptions возвращает пороги и лимиты по умолчанию.
func DefaultOptions() Options {
	return Options{
		CatalogThreshold:  similarity.DefaultCatalogThreshold,
		PairwiseThreshold: similarity.DefaultPairwiseThreshold,
		MaxUploadBytes:    domain.MaxUploadBytes,
		EventTopN:         defaultEventTopN,
	}
}

// VisualSearchUseCase ведёт поиск от загрузки изображения до ранжированной выдачи.
// embeddingRepo и events необязательны: nil отключает выгрузку векторов и события в outbox.
type VisualSearchUseCase struct {
	catalogRepo   CatalogRepository
	catalogCache  CatalogCache
	searchRepo    SearchRepository
	embeddingRepo EmbeddingRepository
	extractor     FeatureExtractor
	preprocessor  ImagePreprocessor
	fetcher       ImageFetcher
	events        SearchEventEncoder
	opts          Options
	logger        logger.Logger

	unavailableOnce sync.Once
	background      sync.WaitGroup
}

func NewVisualSearchUC(
	catalogRepo CatalogRepository,
	catalogCache CatalogCache,
	searchRepo SearchRepository,
	embeddingRepo EmbeddingRepository,
	extractor FeatureExtractor,
	preprocessor ImagePreprocessor,
	fetcher ImageFetcher,
	events SearchEventEncoder,
	opts Options,
	logger logger.Logger,
) *VisualSearchUseCase {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = domain.MaxUploadBytes
	}
	if opts.EventTopN <= 0 {
		opts.EventTopN = defaultEventTopN
	}

	return &VisualSearchUseCase{
		catalogRepo:   catalogRepo,
		catalogCache:  catalogCache,
		searchRepo:    searchRepo,
		embeddingRepo: embeddingRepo,
		extractor:     extractor,
		preprocessor:  preprocessor,
		fetcher:       fetcher,
		events:        events,
		opts:          opts,
		logger:        logger,
	}
}

// ValidateUpload проверяет тип и размер загруженного файла.
func (v *VisualSearchUseCase) ValidateUpload(upload *domain.Upload) error {
	if upload == nil || len(upload.Data) == 0 {
		return e.NewUploadError("Please select an image to search.", e.ErrNoImages)
	}

	if !domain.IsSupportedImageType(normalizeMimeType(upload.MimeType)) {
		return e.NewUploadError(ReasonInvalidType, e.ErrUnsupportedMediaType)
	}

	size := max(upload.Size, int64(len(upload.Data)))
	if size > v.opts.MaxUploadBytes {
		return e.NewUploadError(ReasonTooLarge, e.ErrFileTooLarge)
	}

	return nil
}

// Search выполняет поиск похожих товаров по загруженному изображению.
// reporter может быть nil. При отмене ctx результаты отбрасываются и возвращается e.ErrSearchCancelled.
func (v *VisualSearchUseCase) Search(ctx context.Context, req *SearchReq, reporter ProgressReporter) (*SearchRes, error) {
	const op = "VisualSearchUseCase.Search"

	started := time.Now()
	searchID := uuid.NewString()
	progress := newProgressTracker(reporter)

	res, ranked, err := v.search(ctx, searchID, req, progress)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	duration := time.Since(started)
	metrics.SearchDurationSeconds.Observe(duration.Seconds())

	if err != nil {
		err = v.classify(ctx, err)
		progress.fail(failureStatus(err))
		metrics.SearchRequestsTotal.WithLabelValues(outcomeLabel(err)).Inc()

		if !errors.Is(err, e.ErrSearchCancelled) {
			v.saveHistory(v.newRecord(searchID, req, domain.StateError, duration, nil, ranked), nil)
		}

		return nil, e.Wrap(op, err)
	}

	metrics.SearchRequestsTotal.WithLabelValues("done").Inc()
	metrics.SearchResultsCount.Observe(float64(len(res.Results)))

	v.logger.Infof(
		"Visual search finished. search_id: %s, results: %d, scanned: %d, skipped: %d, duration: %s",
		searchID, len(res.Results), res.Scanned, res.Skipped, duration,
	)

	v.saveHistory(
		v.newRecord(searchID, req, domain.StateDone, duration, res, ranked),
		NewSearchEvent(searchID, res, duration, v.opts.EventTopN),
	)

	return res, nil
}

func (v *VisualSearchUseCase) search(
	ctx context.Context,
	searchID string,
	req *SearchReq,
	progress *progressTracker,
) (*SearchRes, []domain.SimilarityResult, error) {
	// ValidatingUpload
	progress.set(domain.StateValidatingUpload, 0, "Validating image...")
	if req == nil {
		return nil, nil, e.NewUploadError("Please select an image to search.", e.ErrNoImages)
	}
	if err := v.ValidateUpload(req.Upload); err != nil {
		return nil, nil, err
	}
	progress.set(domain.StateValidatingUpload, progressValidated, "Image accepted")

	// ExtractingQuery
	progress.set(domain.StateExtractingQuery, progressValidated, "Loading image recognition model...")
	if err := v.checkModel(ctx); err != nil {
		return nil, nil, err
	}
	progress.set(domain.StateExtractingQuery, progressModelReady, "Analyzing image...")

	query, err := v.embed(ctx, req.Upload.Data)
	if err != nil {
		if isFatalScanError(ctx, err) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", e.ErrQueryExtractionFailed, err)
	}
	progress.set(domain.StateExtractingQuery, progressQueryExtracted, "Image analyzed")

	// ScanningCatalog
	products, cached, err := v.loadCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	progress.set(domain.StateScanningCatalog, progressQueryExtracted, "Comparing with catalog...")

	var (
		entries  = make([]domain.CatalogEntry, 0, len(products))
		exported = make([]domain.CatalogEmbedding, 0, len(products))
		skipped  int
		failed   int
	)
	for item := range v.scanCatalog(ctx, products) {
		switch {
		case item.Err == nil:
			entries = append(entries, domain.NewCatalogEntry(item.Product.ID, item.Embedding))
			exported = append(exported, domain.CatalogEmbedding{
				ProductID:    item.Product.ID,
				Vector:       item.Embedding,
				ModelVersion: v.extractor.ModelVersion(),
				ImageRef:     item.Product.Image,
				ComputedAt:   time.Now().UTC(),
			})
			metrics.CatalogItemsTotal.WithLabelValues("ok").Inc()
		case isFatalScanError(ctx, item.Err):
			return nil, nil, item.Err
		case errors.Is(item.Err, e.ErrNoCatalogImage):
			skipped++
			metrics.CatalogItemsTotal.WithLabelValues("no_image").Inc()
			v.logger.Debugf("Product skipped, no image. product_id: %s", item.Product.ID)
		default:
			skipped++
			failed++
			metrics.CatalogItemsTotal.WithLabelValues("failed").Inc()
			v.logger.Warnf(
				"Failed to process catalog image, skipping. search_id: %s, product_id: %s, error: %v",
				searchID, item.Product.ID, item.Err,
			)
		}

		progress.set(
			domain.StateScanningCatalog,
			scanPercent(item.Index, item.Total),
			fmt.Sprintf("Comparing with catalog %d/%d", item.Index+1, item.Total),
		)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if cached && failed > 0 {
		// снимок мог сослаться на удалённые изображения: следующий поиск перечитает каталог
		v.invalidateCatalog()
	}

	// Ranking
	progress.set(domain.StateRanking, progressRanking, "Ranking results...")
	ranked := similarity.Rank(query, entries, v.opts.CatalogThreshold)

	v.exportEmbeddings(exported)

	res := &SearchRes{
		SearchID:     searchID,
		Results:      v.buildResults(ranked, products, req.Sort, req.Limit),
		Scanned:      len(entries),
		Skipped:      skipped,
		ModelVersion: v.extractor.ModelVersion(),
	}
	res.Summary = summaryFor(len(res.Results))

	// Done
	progress.set(domain.StateDone, progressDone, res.Summary)

	return res, ranked, nil
}

// Compare сравнивает два изображения с порогом PairwiseThreshold.
func (v *VisualSearchUseCase) Compare(ctx context.Context, req *CompareReq) (*CompareRes, error) {
	const op = "VisualSearchUseCase.Compare"

	if req == nil {
		return nil, e.Wrap(op, e.NewUploadError("Please select two images to compare.", e.ErrNoImages))
	}
	for _, upload := range []*domain.Upload{req.First, req.Second} {
		if err := v.ValidateUpload(upload); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err := v.checkModel(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	first, err := v.embed(ctx, req.First.Data)
	if err != nil {
		return nil, e.Wrap(op, v.classifyExtraction(ctx, err))
	}

	second, err := v.embed(ctx, req.Second.Data)
	if err != nil {
		return nil, e.Wrap(op, v.classifyExtraction(ctx, err))
	}

	score, similar := similarity.IsSimilar(first, second, v.opts.PairwiseThreshold)

	return &CompareRes{
		Similarity: score,
		Similar:    similar,
		Threshold:  v.opts.PairwiseThreshold,
		MatchLabel: matchLabel(score),
	}, nil
}

// Availability сообщает, можно ли сейчас выполнять визуальный поиск.
func (v *VisualSearchUseCase) Availability(ctx context.Context) *AvailabilityRes {
	if err := v.checkModel(ctx); err != nil {
		return &AvailabilityRes{
			Available: false,
			Message:   "Visual search is currently unavailable. Please use text search instead.",
		}
	}

	return &AvailabilityRes{
		Available:    true,
		Message:      "Visual search is available",
		ModelVersion: v.extractor.ModelVersion(),
	}
}

// WaitForBackground ждёт завершения фоновых задач (история поисков, кэш, экспорт векторов)
// или отмены ctx.
func (v *VisualSearchUseCase) WaitForBackground(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		v.background.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// checkModel загружает модель при первом обращении. Недоступность модели логируется один раз за процесс.
func (v *VisualSearchUseCase) checkModel(ctx context.Context) error {
	err := v.extractor.Available(ctx)
	if err != nil && errors.Is(err, e.ErrModelUnavailable) {
		v.unavailableOnce.Do(func() {
			v.logger.Errorf(err, "Image recognition model is unavailable, visual search disabled")
		})
	}

	return err
}

// embed проводит байты изображения через препроцессор и модель.
func (v *VisualSearchUseCase) embed(ctx context.Context, data []byte) (domain.Embedding, error) {
	img, err := v.preprocessor.Prepare(data)
	if err != nil {
		return nil, err
	}

	return v.extractor.Extract(ctx, img)
}

// loadCatalog читает каталог через кэш; при промахе идёт в репозиторий и кладёт результат в кэш в фоне.
// cached сообщает, что снимок взят из кэша.
func (v *VisualSearchUseCase) loadCatalog(ctx context.Context) (products []domain.Product, cached bool, err error) {
	const op = "VisualSearchUseCase.loadCatalog"

	products, found, err := v.catalogCache.GetCatalog(ctx)
	switch {
	case err != nil:
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
		v.logger.Warnf("Failed to read catalog from cache: %v", e.Wrap(op, err))
	case found:
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return products, true, nil
	default:
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	products, err = v.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, false, e.Wrap(op, err)
	}

	v.runBackground(func(bgCtx context.Context) {
		if err := v.catalogCache.SetCatalog(bgCtx, products); err != nil {
			v.logger.Warnf("Failed to cache catalog in background: %v", e.Wrap(op, err))
		}
	})

	return products, false, nil
}

func (v *VisualSearchUseCase) invalidateCatalog() {
	v.runBackground(func(bgCtx context.Context) {
		if err := v.catalogCache.DeleteCatalog(bgCtx); err != nil {
			v.logger.Warnf("Failed to invalidate catalog cache: %v", e.Wrap("VisualSearchUseCase.invalidateCatalog", err))
		}
	})
}

func (v *VisualSearchUseCase) buildResults(
	ranked []domain.SimilarityResult,
	products []domain.Product,
	sortMode domain.SortMode,
	limit int,
) []ResultItem {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]ResultItem, 0, len(ranked))
	for _, r := range ranked {
		p, ok := byID[r.ProductID]
		if !ok {
			continue
		}

		items = append(items, ResultItem{
			ProductID:      p.ID,
			Name:           p.Name,
			CategoryName:   p.CategoryName,
			Price:          p.Price,
			PriceFormatted: currency.FormatINR(p.Price),
			ImageURL:       p.Image.URL,
			Similarity:     r.Score,
			MatchLabel:     matchLabel(r.Score),
		})
	}

	sortResults(items, sortMode)

	return v.limitResults(items, limit)
}

// TextSearch ищет товары каталога по подстроке в названии без учёта регистра.
// Модель не нужна; без явной сортировки выдача упорядочена по названию.
func (v *VisualSearchUseCase) TextSearch(ctx context.Context, req *TextSearchReq) (*TextSearchRes, error) {
	const op = "VisualSearchUseCase.TextSearch"

	query := strings.ToLower(strings.TrimSpace(req.Query))
	if query == "" {
		return nil, e.Wrap(op, e.ErrEmptyQuery)
	}

	products, _, err := v.loadCatalog(ctx)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrSearchFailed, err))
	}

	items := make([]ResultItem, 0)
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}

		items = append(items, ResultItem{
			ProductID:      p.ID,
			Name:           p.Name,
			CategoryName:   p.CategoryName,
			Price:          p.Price,
			PriceFormatted: currency.FormatINR(p.Price),
			ImageURL:       p.Image.URL,
		})
	}

	mode := req.Sort
	if mode == domain.SortBySimilarity {
		mode = domain.SortByName
	}
	sortResults(items, mode)
	items = v.limitResults(items, req.Limit)

	return &TextSearchRes{Results: items, Summary: textSummaryFor(len(items))}, nil
}

// limitResults обрезает выдачу; limit <= 0 означает лимит из конфигурации.
func (v *VisualSearchUseCase) limitResults(items []ResultItem, limit int) []ResultItem {
	if limit <= 0 {
		limit = v.opts.MaxResults
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items
}

// sortResults переупорядочивает выдачу; при равенстве ключа сохраняется порядок по близости.
func sortResults(items []ResultItem, mode domain.SortMode) {
	switch mode {
	case domain.SortByPriceLow:
		slices.SortStableFunc(items, func(a, b ResultItem) int { return cmp.Compare(a.Price, b.Price) })
	case domain.SortByPriceHigh:
		slices.SortStableFunc(items, func(a, b ResultItem) int { return cmp.Compare(b.Price, a.Price) })
	case domain.SortByName:
		slices.SortStableFunc(items, func(a, b ResultItem) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
}

func (v *VisualSearchUseCase) newRecord(
	searchID string,
	req *SearchReq,
	status domain.SearchState,
	duration time.Duration,
	res *SearchRes,
	ranked []domain.SimilarityResult,
) *domain.SearchRecord {
	record := &domain.SearchRecord{
		ID:           searchID,
		Status:       status,
		ModelVersion: v.extractor.ModelVersion(),
		Threshold:    v.opts.CatalogThreshold,
		Duration:     duration,
		Results:      ranked,
		CreatedAt:    time.Now().UTC(),
	}
	if req != nil && req.Upload != nil {
		record.UploadName = req.Upload.Name
		record.UploadSize = max(req.Upload.Size, int64(len(req.Upload.Data)))
	}
	if res != nil {
		record.Scanned = res.Scanned
		record.Skipped = res.Skipped
	}

	return record
}

// saveHistory в фоне сохраняет запись поиска вместе с событием для outbox (если события включены).
func (v *VisualSearchUseCase) saveHistory(record *domain.SearchRecord, event *SearchEvent) {
	const op = "VisualSearchUseCase.saveHistory"

	var outbox *OutboxEvent
	if v.events != nil && event != nil {
		payload, err := v.events.EncodeSearchEvent(event)
		if err != nil {
			v.logger.Warnf("Failed to encode search event. search_id: %s, error: %v", record.ID, e.Wrap(op, err))
		} else {
			outbox = NewOutboxEvent(record.ID, SearchCompleted, payload)
		}
	}

	v.runBackground(func(bgCtx context.Context) {
		if err := v.searchRepo.Save(bgCtx, record, outbox); err != nil {
			v.logger.Warnf("Failed to save search history. search_id: %s, error: %v", record.ID, e.Wrap(op, err))
		}
	})
}

func (v *VisualSearchUseCase) exportEmbeddings(embeddings []domain.CatalogEmbedding) {
	const op = "VisualSearchUseCase.exportEmbeddings"

	if v.embeddingRepo == nil || len(embeddings) == 0 {
		return
	}

	v.runBackground(func(bgCtx context.Context) {
		if err := v.embeddingRepo.Upsert(bgCtx, embeddings); err != nil {
			v.logger.Warnf("Failed to export catalog embeddings: %v", e.Wrap(op, err))
		}
	})
}

// runBackground выполняет побочную задачу вне запроса с собственным таймаутом.
func (v *VisualSearchUseCase) runBackground(fn func(ctx context.Context)) {
	v.background.Add(1)
	go func() {
		defer v.background.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		fn(bgCtx)
	}()
}

// classify сводит ошибку поиска к одной из ошибок, видимых клиенту.
func (v *VisualSearchUseCase) classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", e.ErrSearchCancelled, err)
	case errors.Is(err, e.ErrInvalidUpload),
		errors.Is(err, e.ErrModelUnavailable),
		errors.Is(err, e.ErrRenderingUnavailable),
		errors.Is(err, e.ErrQueryExtractionFailed):
		return err
	default:
		v.logger.Errorf(err, "Visual search failed")
		return fmt.Errorf("%w: %w", e.ErrSearchFailed, err)
	}
}

func (v *VisualSearchUseCase) classifyExtraction(ctx context.Context, err error) error {
	if isFatalScanError(ctx, err) {
		return err
	}

	return fmt.Errorf("%w: %w", e.ErrQueryExtractionFailed, err)
}

func failureStatus(err error) string {
	if reason, ok := e.UploadReason(err); ok {
		return reason
	}

	switch {
	case errors.Is(err, e.ErrSearchCancelled):
		return "Search cancelled"
	case errors.Is(err, e.ErrModelUnavailable):
		return "Visual search is currently unavailable. Please use text search instead."
	case errors.Is(err, e.ErrQueryExtractionFailed):
		return "Could not analyze the uploaded image. Please try a different image."
	default:
		return e.ErrSearchFailed.Error()
	}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, e.ErrSearchCancelled):
		return "cancelled"
	case errors.Is(err, e.ErrInvalidUpload):
		return "invalid_upload"
	case errors.Is(err, e.ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, e.ErrRenderingUnavailable):
		return "rendering_unavailable"
	case errors.Is(err, e.ErrQueryExtractionFailed):
		return "query_extraction_failed"
	default:
		return "failed"
	}
}

func summaryFor(n int) string {
	if n == 0 {
		return "No similar products found"
	}

	return fmt.Sprintf("Found %d similar products", n)
}

func textSummaryFor(n int) string {
	switch n {
	case 0:
		return "No products found. Try a different search term."
	case 1:
		return "Found 1 product"
	default:
		return fmt.Sprintf("Found %d products", n)
	}
}

// matchLabel переводит близость в подпись вида "73% match". Отрицательная близость даёт "0% match".
func matchLabel(score float64) string {
	return fmt.Sprintf("%d%% match", int(math.Round(max(score, 0)*100)))
}

// normalizeMimeType отбрасывает параметры и приводит тип к нижнему регистру.
func normalizeMimeType(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}

	return mediaType
}
