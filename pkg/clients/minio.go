package clients

import (
	"context"
	"fmt"

	config "github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinIOClient подключается к хранилищу изображений каталога.
func NewMinIOClient(cfg *config.MinIOCfg) (*minio.Client, error) {
	if cfg.MinioEndpoint == "" {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: MINIO_ENDPOINT is empty", e.ErrIncorrectEnvVariable))
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return client, nil
}

// EnsureBucket проверяет бакет с изображениями товаров и создаёт пустой, если его нет.
// Пустой бакет не ошибка: у товаров может быть только URL.
func EnsureBucket(ctx context.Context, client *minio.Client, bucketName string, log logger.Logger) error {
	const op = "clients.EnsureBucket"

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return e.Wrap(op, err)
	}
	if exists {
		return nil
	}

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		// бакет мог создать соседний инстанс
		if resp := minio.ToErrorResponse(err); resp.Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return e.Wrap(op, err)
	}

	log.Warnf("Bucket %s was missing and has been created, catalog images will be fetched by URL only", bucketName)
	return nil
}
