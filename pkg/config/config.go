package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	API             APIConfig       `yaml:"api"`
	Upload          UploadConfig    `yaml:"upload"`
	ImageProcessing ImageProcConfig `yaml:"image_processing"`
	History         HistoryConfig   `yaml:"history"`
	App             AppSpecific     `yaml:"app"`
}

// APIConfig — настройки подключения к админскому REST API портала.
type APIConfig struct {
	BaseURL       string `yaml:"base_url"`       // Базовый URL портала (например, https://portal.example.com/api)
	Timeout       string `yaml:"timeout"`        // Timeout для HTTP запросов (например, "30s")
	RateLimit     int    `yaml:"rate_limit"`     // Запросов в минуту
	BurstLimit    int    `yaml:"burst_limit"`    // Burst для rate limiter
	RetryAttempts int    `yaml:"retry_attempts"` // Количество retry попыток (только для идемпотентных GET)
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *APIConfig) GetDefaults() APIConfig {
	result := *c // Копируем текущие значения

	if result.Timeout == "" {
		result.Timeout = "30s"
	}
	if result.RateLimit == 0 {
		result.RateLimit = 300 // запросов в минуту; админка дергает API часто
	}
	if result.BurstLimit == 0 {
		result.BurstLimit = 10
	}
	if result.RetryAttempts == 0 {
		result.RetryAttempts = 3
	}

	return result
}

// UploadConfig — настройки загрузки файлов (изображения баннеров, документы).
//
// mode = "portal": файлы уходят на POST /azure/upload, URL выдает backend.
// mode = "s3": файлы кладутся напрямую в S3-совместимый bucket (minio client).
type UploadConfig struct {
	Mode string   `yaml:"mode"` // "portal" | "s3"
	S3   S3Config `yaml:"s3"`
}

// S3Config — настройки S3-совместимого хранилища (для upload.mode = "s3").
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"` // База для итоговых публичных URL
}

// ImageProcConfig — настройки обработки изображений перед загрузкой.
type ImageProcConfig struct {
	MaxWidth int `yaml:"max_width"`
	Quality  int `yaml:"quality"`
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *ImageProcConfig) GetDefaults() ImageProcConfig {
	result := *c
	if result.MaxWidth == 0 {
		result.MaxWidth = 1920
	}
	if result.Quality == 0 {
		result.Quality = 85
	}
	return result
}

// HistoryConfig — настройки локального журнала действий (sqlite).
type HistoryConfig struct {
	Path string `yaml:"path"` // Путь к файлу БД. Пусто = "./partsdesk-history.db"
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug       bool   `yaml:"debug"`
	DownloadDir string `yaml:"download_dir"` // Куда сохранять экспорты (xlsx блобы)
	ColorScheme string `yaml:"color_scheme"` // default | dark | light
	PageLimit   int    `yaml:"page_limit"`   // Размер страницы списков по умолчанию
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *AppSpecific) GetDefaults() AppSpecific {
	result := *c
	if result.DownloadDir == "" {
		result.DownloadDir = "./downloads"
	}
	if result.ColorScheme == "" {
		result.ColorScheme = "default"
	}
	if result.PageLimit == 0 {
		result.PageLimit = 20
	}
	return result
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	switch c.Upload.Mode {
	case "", "portal":
		// portal — дефолт, backend сам выдает URL
	case "s3":
		if c.Upload.S3.Bucket == "" {
			return fmt.Errorf("upload.s3.bucket is required for upload.mode=s3")
		}
		if c.Upload.S3.Endpoint == "" {
			return fmt.Errorf("upload.s3.endpoint is required for upload.mode=s3")
		}
	default:
		return fmt.Errorf("unknown upload.mode: %q (expected portal or s3)", c.Upload.Mode)
	}
	return nil
}
