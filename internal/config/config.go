package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"sort"
	"strings"
)

// Environment — имя профиля окружения, выбираемого один раз при старте процесса.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvQA          Environment = "qa"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Имена переменных окружения, которые сервис читает при старте.
const (
	envName          = "ORDERS_ENV"
	envHTTPAddr      = "ORDERS_HTTP_ADDR"
	envMetricsAddr   = "ORDERS_METRICS_ADDR"
	envStorageDriver = "ORDERS_STORAGE_DRIVER"
	envDBHost        = "ORDERS_DB_HOST"
	envDBPort        = "ORDERS_DB_PORT"
	envDBName        = "ORDERS_DB_NAME"
	envDBUser        = "ORDERS_DB_USER"
	envDBPassword    = "ORDERS_DB_PASSWORD"
	envDBAutoMigrate = "ORDERS_DB_AUTO_MIGRATE"
	envCORSOrigins   = "ORDERS_CORS_ORIGINS"
)

// Драйверы хранилища.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// DatabaseConfig описывает подключение к PostgreSQL.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Config — неизменяемая конфигурация процесса, разрешённая один раз при старте
// и передаваемая в компоненты через конструкторы. Хендлеры не читают окружение.
type Config struct {
	Env           Environment
	HTTPAddr      string
	MetricsAddr   string
	StorageDriver string
	Database      DatabaseConfig
	AutoMigrate   bool

	// SwaggerEnabled включает интерактивную документацию API.
	// Для production всегда false.
	SwaggerEnabled bool

	// AllowedOrigins — явный allow-list для CORS. Пустой срез означает
	// разрешение любых origin (без credentials).
	AllowedOrigins []string
}

// Load читает окружение и собирает конфигурацию выбранного профиля.
// Для production отсутствие обязательных параметров подключения — фатальная
// ошибка старта: сервис не должен подняться наполовину сконфигурированным.
func Load() (Config, error) {
	env, err := parseEnvironment(os.Getenv(envName))
	if err != nil {
		return Config{}, err
	}

	cfg := profileDefaults(env)

	if v := strings.TrimSpace(os.Getenv(envHTTPAddr)); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(envMetricsAddr)); v != "" {
		cfg.MetricsAddr = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(envStorageDriver))); v != "" {
		if v != StorageDriverPostgres && v != StorageDriverMemory {
			return Config{}, fmt.Errorf("unsupported storage driver %q (use %s|%s)", v, StorageDriverPostgres, StorageDriverMemory)
		}
		cfg.StorageDriver = v
	}
	if v := strings.TrimSpace(os.Getenv(envDBHost)); v != "" {
		cfg.Database.Host = v
	}
	if v := strings.TrimSpace(os.Getenv(envDBPort)); v != "" {
		cfg.Database.Port = v
	}
	if v := strings.TrimSpace(os.Getenv(envDBName)); v != "" {
		cfg.Database.Name = v
	}
	if v := strings.TrimSpace(os.Getenv(envDBUser)); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv(envDBPassword); v != "" {
		cfg.Database.Password = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(envDBAutoMigrate))); v != "" {
		cfg.AutoMigrate = v == "true" || v == "1" || v == "on" || v == "yes"
	}
	cfg.AllowedOrigins = parseOrigins(os.Getenv(envCORSOrigins))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// profileDefaults возвращает явные значения каждого профиля.
// Production намеренно не имеет дефолтов подключения к БД.
func profileDefaults(env Environment) Config {
	cfg := Config{
		Env:           env,
		HTTPAddr:      ":8080",
		MetricsAddr:   ":9090",
		StorageDriver: StorageDriverPostgres,
		AutoMigrate:   true,
	}

	switch env {
	case EnvDevelopment:
		cfg.SwaggerEnabled = true
		cfg.Database = DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			Name:     "orders_dev",
			User:     "orders",
			Password: "orders",
		}
	case EnvQA:
		cfg.SwaggerEnabled = true
		cfg.Database = DatabaseConfig{
			Host:     "qa-postgres",
			Port:     "5432",
			Name:     "orders_qa",
			User:     "orders",
			Password: "orders",
		}
	case EnvStaging:
		cfg.SwaggerEnabled = true
		cfg.Database = DatabaseConfig{
			Host:     "staging-postgres",
			Port:     "5432",
			Name:     "orders_staging",
			User:     "orders",
			Password: "orders",
		}
	case EnvProduction:
		cfg.SwaggerEnabled = false
		cfg.AutoMigrate = false
		cfg.Database = DatabaseConfig{Port: "5432"}
	}

	return cfg
}

func parseEnvironment(raw string) (Environment, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return EnvDevelopment, nil
	}
	switch Environment(v) {
	case EnvDevelopment, EnvQA, EnvStaging, EnvProduction:
		return Environment(v), nil
	}
	return "", fmt.Errorf("unknown environment %q (use development|qa|staging|production)", raw)
}

func parseOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		origins = append(origins, p)
	}
	return origins
}

func (c Config) validate() error {
	if c.StorageDriver != StorageDriverPostgres {
		return nil
	}

	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, envDBHost)
	}
	if c.Database.Name == "" {
		missing = append(missing, envDBName)
	}
	if c.Database.User == "" {
		missing = append(missing, envDBUser)
	}
	if c.Database.Password == "" {
		missing = append(missing, envDBPassword)
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return fmt.Errorf("environment %s requires database settings, missing: %s",
		c.Env, strings.Join(missing, ", "))
}

// DSN собирает строку подключения к PostgreSQL. Userinfo кодируется правилами
// URL, а не query-строки: пробел в пароле остаётся пробелом, а не плюсом.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
