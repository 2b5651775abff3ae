package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/visual-search/internal/cfg"
	v1Grpc "github.com/DRSN-tech/visual-search/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/visual-search/internal/delivery/v1/http"
	"github.com/DRSN-tech/visual-search/internal/infrastructure/imagefetch"
	"github.com/DRSN-tech/visual-search/internal/infrastructure/imageproc"
	"github.com/DRSN-tech/visual-search/internal/infrastructure/kafka"
	ml_service "github.com/DRSN-tech/visual-search/internal/infrastructure/ml-service"
	s3Repo "github.com/DRSN-tech/visual-search/internal/repository/minio"
	"github.com/DRSN-tech/visual-search/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/visual-search/internal/repository/pgdb/converter"
	qdrantRepo "github.com/DRSN-tech/visual-search/internal/repository/qdrant"
	"github.com/DRSN-tech/visual-search/internal/repository/redis"
	redisConv "github.com/DRSN-tech/visual-search/internal/repository/redis/converter"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/clients"
	"github.com/DRSN-tech/visual-search/pkg/closer"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/DRSN-tech/visual-search/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthProbeInterval = 30 * time.Second
	outboxPollInterval  = 30 * time.Second
	ensureTopicTimeout  = 10 * time.Second
	infraConnectTimeout = 10 * time.Second
)

// App собирает зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	searchUC *usecase.VisualSearchUseCase
	sessions *usecase.SearchSessions
	outbox   *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(0),
	}

	if err := a.init(); err != nil {
		// освобождаем то, что успели открыть
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := a.closer.Close(ctx); closeErr != nil {
			logger.Warnf("cleanup after failed init: %v", closeErr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	cfg, logger := a.cfg, a.logger

	db, err := initPGDB(logger, cfg)
	if err != nil {
		return err
	}
	a.closer.AddSimple("postgres", func() error { db.Close(); return nil })

	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	searchRepo := pgdb.NewSearchRepo(db.Pool, pgdbConv.NewSearchConverter(), outboxRepo)

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.AddSimple("redis", redisClient.Close)
	if err := redisClient.Ping(context.Background(), infraConnectTimeout); err != nil {
		return e.Wrap("failed to connect to redis", err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewCatalogConverter(), cfg.Redis, logger)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return e.Wrap("failed to initialize minio client", err)
	}
	minioCtx, minioCancel := context.WithTimeout(context.Background(), infraConnectTimeout)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName, logger); err != nil {
		return e.Wrap("failed to initialize MinIO bucket", err)
	}
	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio, cfg.ImageFetch.MaxBytes)

	// Экспорт векторов и события необязательны: nil-интерфейс отключает их в usecase
	var embeddingRepo usecase.EmbeddingRepository
	if cfg.Qdrant.Enabled() {
		qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
		if err != nil {
			return e.Wrap("failed to initialize qdrant", err)
		}
		a.closer.AddSimple("qdrant", qdrantClient.Close)

		qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), infraConnectTimeout)
		defer qdrantCancel()
		if err := clients.EnsureCollection(qdrantCtx, qdrantClient); err != nil {
			return e.Wrap("failed to initialize qdrant collection", err)
		}
		embeddingRepo = qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant)
	} else {
		logger.Infof("QDRANT_HOST is empty, catalog embedding export disabled")
	}

	var events usecase.SearchEventEncoder
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(logger, cfg.Kafka)
		if err != nil {
			return e.Wrap("failed to initialize kafka producer", err)
		}
		a.closer.AddSimple("kafka producer", producer.Close)

		if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
			logger.Warnf("kafka topic check failed, relying on broker auto-create: %v", err)
		}

		events = producer
		a.outbox = kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn, outboxPollInterval)
	} else {
		logger.Infof("KAFKA_BROKERS is empty, search events disabled")
	}

	extractor, err := a.initExtractor()
	if err != nil {
		return err
	}

	fetcher := imagefetch.NewFetcher(imageRepo, nil, cfg.ImageFetch, logger)
	preprocessor := imageproc.NewPreprocessor(cfg.Search.InputSize, cfg.Search.MaxSourcePixels, imageproc.NewRGBASurface)

	a.searchUC = usecase.NewVisualSearchUC(
		productRepo,
		cacheRepo,
		searchRepo,
		embeddingRepo,
		extractor,
		preprocessor,
		fetcher,
		events,
		usecase.Options{
			CatalogThreshold:  cfg.Search.CatalogThreshold,
			PairwiseThreshold: cfg.Search.PairwiseThreshold,
			MaxUploadBytes:    cfg.Search.MaxUploadBytes,
			MaxResults:        cfg.Search.MaxResults,
		},
		logger,
	)
	a.closer.Add("search background tasks", a.searchUC.WaitForBackground)

	a.sessions = usecase.NewSearchSessions(a.searchUC, cfg.Search.SessionTTL, logger)
	a.closer.Add("search sessions", a.sessions.Close)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, cfg.Search.MaxUploadBytes, logger)
	a.grpcSrv.RegisterServices(a.searchUC)
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	r := chi.NewRouter()
	v1Http.NewRouter(r, cfg.Search.MaxUploadBytes, logger).Init(a.searchUC, a.sessions)
	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	return nil
}

// initExtractor подключает ML-сервис. Пустой адрес оставляет модель недоступной.
func (a *App) initExtractor() (*ml_service.MLService, error) {
	cfg := a.cfg.Ml

	var client ml_service.FeatureClient
	if cfg.Addr != "" {
		conn, err := grpc.NewClient(
			cfg.Addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()), // внутренняя сеть, без TLS
		)
		if err != nil {
			return nil, e.Wrap("failed to initialize grpc client", err)
		}
		a.closer.AddSimple("ml grpc connection", conn.Close)
		client = ml_service.NewGRPCFeatureClient(conn)
	} else {
		a.logger.Warnf("ML_HOST is empty, visual search is unavailable")
	}

	return ml_service.NewMLService(client, cfg.Addr != "", a.cfg.Search.InputSize, cfg.MaxRetries, cfg.Timeout, a.logger), nil
}

// Run запускает серверы и фоновые воркеры и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.sessions.Run(ctx)
	go a.watchModel(ctx)

	if a.outbox != nil {
		a.outbox.Start(ctx)
		a.closer.AddSimple("outbox worker", func() error { a.outbox.Stop(); return nil })
	}

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("gRPC server failed", err)
		}
	}()

	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- e.Wrap("HTTP server failed", err)
		}
	}()

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-ctx.Done():
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "graceful shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// watchModel прогревает модель при старте и держит health-статус gRPC в актуальном состоянии.
func (a *App) watchModel(ctx context.Context) {
	ticker := time.NewTicker(healthProbeInterval)
	defer ticker.Stop()

	for {
		res := a.searchUC.Availability(ctx)
		a.grpcSrv.SetModelAvailable(res.Available)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(context.Background(), cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
