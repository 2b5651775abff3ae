// Package imagefetch загружает изображения товаров каталога из объектного хранилища или по URL.
package imagefetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/infrastructure"
	"github.com/DRSN-tech/visual-search/internal/metrics"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/jitter"
	"github.com/DRSN-tech/visual-search/pkg/logger"
)

const (
	sourceObject = "object"
	sourceURL    = "url"
)

// ObjectStore читает объекты из хранилища изображений.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// Fetcher отдаёт байты изображения товара. Ключ объекта приоритетнее URL.
type Fetcher struct {
	store      ObjectStore
	client     *http.Client
	maxBytes   int64
	maxRetries int
	logger     logger.Logger
}

// NewFetcher создаёт загрузчик. store может быть nil, тогда используются только URL.
func NewFetcher(store ObjectStore, client *http.Client, cfg *cfg.ImageFetchCfg, logger logger.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Fetcher{
		store:      store,
		client:     client,
		maxBytes:   cfg.MaxBytes,
		maxRetries: max(cfg.MaxRetries, 1),
		logger:     logger,
	}
}

// Fetch загружает изображение товара.
func (f *Fetcher) Fetch(ctx context.Context, ref domain.ImageRef) ([]byte, error) {
	const op = "Fetcher.Fetch"

	var (
		data   []byte
		err    error
		source string
	)

	switch {
	case ref.ObjectKey != "" && f.store != nil:
		source = sourceObject
		data, err = f.store.Download(ctx, ref.ObjectKey)
		if err == nil && f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
			err = e.ErrImageTooLarge
		}
	case ref.URL != "":
		source = sourceURL
		data, err = f.fetchURL(ctx, ref.URL)
	default:
		return nil, e.ErrNoCatalogImage
	}

	if err == nil {
		_, err = infrastructure.DetectImageType(data)
	}
	if err != nil {
		metrics.ImageFetchTotal.WithLabelValues(source, "error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, e.Wrap(op, ctxErr)
		}
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrImageFetchFailed, err))
	}

	metrics.ImageFetchTotal.WithLabelValues(source, "ok").Inc()
	return data, nil
}

// statusError — неуспешный HTTP-ответ.
type statusError struct {
	code int
}

func (s *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", s.code)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	var data []byte

	err := jitter.Retry(ctx,
		jitter.Backoff{
			Base:     250 * time.Millisecond,
			Max:      3 * time.Second,
			Attempts: f.maxRetries,
			Factor:   jitter.DefaultJitter,
		},
		isRetryable,
		func(attempt int, wait time.Duration, err error) {
			f.logger.Debugf("Image fetch failed, retrying in %v (attempt %d). url: %s, error: %v", wait, attempt, url, err)
		},
		func(ctx context.Context) error {
			var err error
			data, err = f.get(ctx, url)
			return err
		},
	)

	return data, err
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &statusError{code: resp.StatusCode}
	}

	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return nil, e.ErrImageTooLarge
	}

	reader := io.Reader(resp.Body)
	if f.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, f.maxBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, e.ErrImageTooLarge
	}

	return data, nil
}

// isRetryable повторяет сетевые ошибки, 5xx и 429.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, e.ErrImageTooLarge) {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}

	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
