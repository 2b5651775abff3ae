package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo читает изображения товаров каталога из MinIO.
type ImageRepo struct {
	mc       *minio.Client
	cfg      *cfg.MinIOCfg
	maxBytes int64
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg, maxBytes int64) *ImageRepo {
	return &ImageRepo{
		mc:       mc,
		cfg:      cfg,
		maxBytes: maxBytes,
	}
}

// Download возвращает содержимое объекта по ключу. Объекты больше maxBytes не читаются.
func (i *ImageRepo) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.mc.GetObject(ctx, i.cfg.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if i.maxBytes > 0 && info.Size > i.maxBytes {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %s is %d bytes", e.ErrImageTooLarge, key, info.Size))
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}
