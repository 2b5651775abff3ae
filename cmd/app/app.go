package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/DRSN-tech/visual-search/internal/app"
	config "github.com/DRSN-tech/visual-search/internal/cfg"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env читается до создания логгера: LOG_LEVEL может прийти из него
	envErr := loadEnv()
	log := logger.NewSlogLogger()
	if envErr != nil {
		log.Warnf("failed to load .env: %v", envErr)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}

// loadEnv подгружает переменные из .env, не перетирая уже заданные.
// Файл необязателен: в контейнере переменные приходят из окружения.
func loadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
