package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Minio      *MinIOCfg
	Http       *HTTPConfig
	Grpc       *GRPCConfig
	Db         *PGDBCfg
	Qdrant     *QdrantCfg
	Redis      *RedisCfg
	Ml         *MLServiceCfg
	Kafka      *KafkaCfg
	Search     *SearchCfg
	ImageFetch *ImageFetchCfg
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string // пусто: события поиска не публикуются
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

// Enabled сообщает, что брокеры заданы.
func (k *KafkaCfg) Enabled() bool {
	return len(k.Brokers) > 0
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет с изображениями товаров
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxConns      int    // 0: значение pgxpool по умолчанию
	MigrationsDir string // каталог с *.up.sql/*.down.sql
}

type QdrantCfg struct {
	Port                 int
	Host                 string // пусто: экспорт эмбеддингов отключён
	ApiKey               string
	QdrantCollectionName string
	UseTLS               bool
	VectorSize           uint64
}

// Enabled сообщает, что экспорт в Qdrant настроен.
func (q *QdrantCfg) Enabled() bool {
	return q.Host != ""
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	CatalogTTL  time.Duration
}

type MLServiceCfg struct {
	Addr       string
	MaxRetries int
	Timeout    time.Duration // таймаут одного вызова модели
}

// SearchCfg — параметры визуального поиска.
type SearchCfg struct {
	CatalogThreshold  float64
	PairwiseThreshold float64
	MaxUploadBytes    int64
	MaxResults        int // 0: без ограничения
	InputSize         int // сторона входного квадрата модели
	MaxSourcePixels   int64
	SessionTTL        time.Duration
}

// ImageFetchCfg — параметры загрузки изображений каталога.
type ImageFetchCfg struct {
	Timeout    time.Duration
	MaxBytes   int64
	MaxRetries int
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ml, err := loadMLServiceCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	search, err := loadSearchCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	fetch, err := loadImageFetchCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Minio:      minio,
		Http:       http,
		Grpc:       loadGRPCConfig(),
		Db:         db,
		Qdrant:     qdrant,
		Redis:      redis,
		Ml:         ml,
		Kafka:      kafka,
		Search:     search,
		ImageFetch: fetch,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "visual-search-events"
	)

	var brokers []string
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
		defaultBucket   = "product-images"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 15 * time.Second
		defaultWriteTimeout = 5 * time.Minute // синхронный поиск сканирует весь каталог
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"

		defaultMigrationsDir = "db/migrations"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	maxConns, err := parseIntEnv("POSTGRES_MAX_CONNS", 0)
	if err != nil || maxConns < 0 {
		err = fmt.Errorf("%w: POSTGRES_MAX_CONNS", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid POSTGRES_MAX_CONNS")
		return nil, err
	}

	return &PGDBCfg{
		Host:          getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:          getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:          user,
		Password:      password,
		DBName:        dbName,
		SSLMode:       getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MaxConns:      maxConns,
		MigrationsDir: getEnvOrDefault("MIGRATIONS_DIR", defaultMigrationsDir),
	}, nil
}

func loadQdrantCfg(logger logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultVectorSize     = "1024" // MobileNet v1, последний слой перед классификатором
		defaultCollection     = "catalog_image_embeddings"
	)

	strPort := getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort)
	port, err := strconv.Atoi(strPort)
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	strVectorSize := getEnvOrDefault("VECTOR_SIZE", defaultVectorSize)
	vectorSize, err := strconv.ParseUint(strVectorSize, 10, 64)
	if err != nil {
		logger.Errorf(err, "invalid VECTOR_SIZE")
		return nil, err
	}

	return &QdrantCfg{
		Host:                 getEnv("QDRANT_HOST"),
		Port:                 port,
		ApiKey:               getEnv("QDRANT__SERVICE__API_KEY"),
		QdrantCollectionName: getEnvOrDefault("COLLECTION_NAME", defaultCollection),
		UseTLS:               useTLS,
		VectorSize:           vectorSize,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultCatalogTTL   = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	catalogTTL, err := parseDurationEnv("CATALOG_TTL", defaultCatalogTTL)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		CatalogTTL:  catalogTTL,
	}, nil
}

func loadMLServiceCfg() (*MLServiceCfg, error) {
	const (
		defaultHost       = "ml-service"
		defaultPort       = "50051"
		defaultMaxRetries = 3
		defaultTimeout    = 10 * time.Second
	)

	maxRetries, err := parseIntEnv("ML_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("ML_MAX_RETRIES", err)
	}

	timeout, err := parseDurationEnv("ML_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, e.Wrap("ML_TIMEOUT", err)
	}

	// ML_HOST="" явно отключает модель: поиск отвечает ModelUnavailable
	host, ok := os.LookupEnv("ML_HOST")
	if !ok {
		host = defaultHost
	}

	addr := ""
	if host != "" {
		addr = host + ":" + getEnvOrDefault("ML_PORT", defaultPort)
	}

	return &MLServiceCfg{
		Addr:       addr,
		MaxRetries: maxRetries,
		Timeout:    timeout,
	}, nil
}

func loadSearchCfg(log logger.Logger) (*SearchCfg, error) {
	const (
		defaultCatalogThreshold  = 0.3
		defaultPairwiseThreshold = 0.5
		defaultMaxUploadBytes    = 10 << 20
		defaultMaxResults        = 0
		defaultInputSize         = 224
		defaultMaxSourcePixels   = 40_000_000
		defaultSessionTTL        = 10 * time.Minute
	)

	catalogThreshold, err := parseFloatEnv("SEARCH_CATALOG_THRESHOLD", defaultCatalogThreshold)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_CATALOG_THRESHOLD")
		return nil, err
	}

	pairwiseThreshold, err := parseFloatEnv("SEARCH_PAIRWISE_THRESHOLD", defaultPairwiseThreshold)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_PAIRWISE_THRESHOLD")
		return nil, err
	}

	for name, v := range map[string]float64{
		"SEARCH_CATALOG_THRESHOLD":  catalogThreshold,
		"SEARCH_PAIRWISE_THRESHOLD": pairwiseThreshold,
	} {
		if v < -1 || v > 1 {
			err := fmt.Errorf("%s must be in [-1, 1], got %v: %w", name, v, e.ErrIncorrectEnvVariable)
			log.Errorf(err, "invalid %s", name)
			return nil, err
		}
	}

	maxUpload, err := parseInt64Env("SEARCH_MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_MAX_UPLOAD_BYTES")
		return nil, err
	}

	maxResults, err := parseIntEnv("SEARCH_MAX_RESULTS", defaultMaxResults)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_MAX_RESULTS")
		return nil, err
	}

	inputSize, err := parseIntEnv("SEARCH_INPUT_SIZE", defaultInputSize)
	if err != nil || inputSize <= 0 {
		log.Errorf(e.ErrIncorrectEnvVariable, "invalid SEARCH_INPUT_SIZE")
		return nil, e.Wrap("SEARCH_INPUT_SIZE", e.ErrIncorrectEnvVariable)
	}

	maxPixels, err := parseInt64Env("SEARCH_MAX_SOURCE_PIXELS", defaultMaxSourcePixels)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_MAX_SOURCE_PIXELS")
		return nil, err
	}

	sessionTTL, err := parseDurationEnv("SEARCH_SESSION_TTL", defaultSessionTTL)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_SESSION_TTL")
		return nil, err
	}

	return &SearchCfg{
		CatalogThreshold:  catalogThreshold,
		PairwiseThreshold: pairwiseThreshold,
		MaxUploadBytes:    maxUpload,
		MaxResults:        maxResults,
		InputSize:         inputSize,
		MaxSourcePixels:   maxPixels,
		SessionTTL:        sessionTTL,
	}, nil
}

func loadImageFetchCfg() (*ImageFetchCfg, error) {
	const (
		defaultTimeout    = 15 * time.Second
		defaultMaxBytes   = 20 << 20
		defaultMaxRetries = 3
	)

	timeout, err := parseDurationEnv("IMAGE_FETCH_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, e.Wrap("IMAGE_FETCH_TIMEOUT", err)
	}

	maxBytes, err := parseInt64Env("IMAGE_FETCH_MAX_BYTES", defaultMaxBytes)
	if err != nil {
		return nil, e.Wrap("IMAGE_FETCH_MAX_BYTES", err)
	}

	maxRetries, err := parseIntEnv("IMAGE_FETCH_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("IMAGE_FETCH_MAX_RETRIES", err)
	}

	return &ImageFetchCfg{
		Timeout:    timeout,
		MaxBytes:   maxBytes,
		MaxRetries: maxRetries,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func parseInt64Env(key string, defaultValue int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return f, nil
}
