package pgdb

import (
	"context"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxWriter пишет событие в outbox внутри текущей транзакции.
type OutboxWriter interface {
	Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error)
}

// SearchRepo хранит историю визуальных поисков.
type SearchRepo struct {
	pool   *pgxpool.Pool
	conv   converter.SearchConverter
	outbox OutboxWriter
}

func NewSearchRepo(pool *pgxpool.Pool, conv converter.SearchConverter, outbox OutboxWriter) *SearchRepo {
	return &SearchRepo{
		pool:   pool,
		conv:   conv,
		outbox: outbox,
	}
}

// Save в одной транзакции пишет поиск, его результаты и событие outbox (если есть).
func (s *SearchRepo) Save(ctx context.Context, record *domain.SearchRecord, event *usecase.OutboxEvent) (err error) {
	const op = "SearchRepo.Save"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.pool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	pgTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		return e.Wrap(op, e.ErrTransactionNotFound)
	}
	ctx = tr.WithTx(ctx, pgTx)

	if err = s.insertSearch(ctx, record); err != nil {
		return e.Wrap(op, err)
	}

	if err = s.insertResults(ctx, record); err != nil {
		return e.Wrap(op, err)
	}

	if event != nil {
		if _, err = s.outbox.Create(ctx, event); err != nil {
			return e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (s *SearchRepo) insertSearch(ctx context.Context, record *domain.SearchRecord) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return err
	}

	m, err := s.conv.ToModel(record)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO visual_searches (
			id, status, upload_name, upload_size, scanned, skipped,
			model_version, threshold, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = tx.Exec(ctx, query,
		m.ID, m.Status, m.UploadName, m.UploadSize, m.Scanned, m.Skipped,
		m.ModelVersion, m.Threshold, m.DurationMs, m.CreatedAt,
	)
	return err
}

func (s *SearchRepo) insertResults(ctx context.Context, record *domain.SearchRecord) error {
	results, err := s.conv.ToResultModels(record)
	if err != nil || len(results) == 0 {
		return err
	}

	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"visual_search_results"},
		[]string{"search_id", "rank", "product_id", "similarity"},
		pgx.CopyFromSlice(len(results), func(i int) ([]any, error) {
			r := results[i]
			return []any{r.SearchID, r.Rank, r.ProductID, r.Similarity}, nil
		}),
	)
	return err
}
