package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"queuecare/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Сервер
	Port        string
	Environment string

	// Хранилище талонов
	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string

	// Redis: нумерация талонов и общая лента изменений между экземплярами
	RedisURL    string
	FeedChannel string

	// PubNub
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Очередь уведомлений
	KafkaBrokers     []string
	KafkaNotifyTopic string
	KafkaGroupID     string
	SMSRelayURL      string
	NotifyTimeout    time.Duration
	NotifyBuffer     int

	// Движок очереди
	OperationTimeout time.Duration
	ListPageSize     int
	DepartmentsFile  string
	Departments      models.Departments

	JWTAccessSecret string

	// Планировщик
	SequenceResetCron string
	StatsCron         string

	EnableMetrics bool
}

// Load читает .env (если ENV_CHEK не задан) и переменные окружения.
func Load() (*Config, error) {
	if os.Getenv("ENV_CHEK") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Файл .env не найден, используются переменные окружения")
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StorageDriver: getEnv("STORAGE_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "queuecare"),

		RedisURL:    getEnv("REDIS_URL", ""),
		FeedChannel: getEnv("FEED_CHANNEL", "queue_tickets"),

		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		KafkaBrokers:     getEnvAsList("KAFKA_BROKERS"),
		KafkaNotifyTopic: getEnv("KAFKA_NOTIFY_TOPIC", "ticket-notifications"),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "queuecare-notifier"),
		SMSRelayURL:      getEnv("SMS_RELAY_URL", "http://localhost:5000"),
		NotifyTimeout:    getEnvAsDuration("NOTIFY_TIMEOUT", "10s"),
		NotifyBuffer:     getEnvAsInt("NOTIFY_BUFFER", 256),

		OperationTimeout: getEnvAsDuration("OPERATION_TIMEOUT", "10s"),
		ListPageSize:     getEnvAsInt("LIST_PAGE_SIZE", 0),
		DepartmentsFile:  getEnv("DEPARTMENTS_FILE", ""),

		JWTAccessSecret: getEnv("JWT_ACCESS_SECRET", ""),

		SequenceResetCron: getEnv("SEQUENCE_RESET_CRON", "0 0 0 * * *"),
		StatsCron:         getEnv("STATS_CRON", "0 */5 * * * *"),

		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}

	cfg.Departments = models.DefaultDepartments
	if cfg.DepartmentsFile != "" {
		departments, err := LoadDepartments(cfg.DepartmentsFile)
		if err != nil {
			return nil, err
		}
		cfg.Departments = departments
	}

	if cfg.ListPageSize < 0 {
		return nil, fmt.Errorf("config: LIST_PAGE_SIZE must not be negative, got %d", cfg.ListPageSize)
	}

	return cfg, nil
}

// DSN собирает строку подключения к Postgres.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

type departmentsFile struct {
	Departments models.Departments `yaml:"departments"`
}

// LoadDepartments читает справочник отделений из YAML:
//
//	departments:
//	  - code: general
//	    name: General Practice
func LoadDepartments(path string) (models.Departments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read departments file: %w", err)
	}

	var file departmentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse departments file: %w", err)
	}
	if len(file.Departments) == 0 {
		return nil, fmt.Errorf("config: departments file %s is empty", path)
	}

	seen := make(map[string]bool, len(file.Departments))
	for _, dept := range file.Departments {
		if dept.Code == "" {
			return nil, fmt.Errorf("config: department without code in %s", path)
		}
		if seen[dept.Code] {
			return nil, fmt.Errorf("config: duplicate department code %q", dept.Code)
		}
		seen[dept.Code] = true
	}

	return file.Departments, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
