package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Log     LogConfig
	Storage StorageConfig
	Docs    DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxConnLife time.Duration // DB_MAX_CONN_LIFETIME, ej. "1h"
	AutoMigrate bool          // aplica las migraciones embebidas al arrancar la API
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig validación de los Bearer tokens emitidos por el proveedor de identidad.
type JWTConfig struct {
	Secret string
	Issuer string // vacío = no se verifica el emisor
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host      string
	Port      int
	BodyLimit string // tamaño legible, ej. "12MB"
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimitBytes devuelve BodyLimit en bytes (0 si es inválido).
func (c HTTPConfig) BodyLimitBytes() int {
	n, err := units.FromHumanSize(c.BodyLimit)
	if err != nil {
		return 0
	}
	return int(n)
}

// LogConfig nivel de log: trace, debug, info, warn, error.
type LogConfig struct {
	Level string
}

// Drivers de storage de adjuntos.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// StorageConfig almacenamiento de los archivos adjuntos.
type StorageConfig struct {
	Driver        string // local | s3
	BasePath      string // raíz del storage local
	Bucket        string
	Region        string
	Endpoint      string // opcional: S3 compatible (MinIO, LocalStack)
	AccessKey     string // vacío = cadena de credenciales por defecto de AWS
	SecretKey     string
	MaxUploadSize string // tamaño legible, ej. "10MB"
}

// MaxUploadSizeBytes devuelve MaxUploadSize en bytes (0 si es inválido).
func (c StorageConfig) MaxUploadSizeBytes() int64 {
	n, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return 0
	}
	return n
}

// DocsConfig Swagger UI.
type DocsConfig struct {
	Enabled  bool
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "gecom-preload"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gecom_preload"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			MinConns:    getInt(v, "DB_MIN_CONNS", 2),
			MaxConnLife: getDuration(v, "DB_MAX_CONN_LIFETIME", time.Hour),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		HTTP: HTTPConfig{
			Host:      getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:      getInt(v, "HTTP_PORT", 8080),
			BodyLimit: getString(v, "HTTP_BODY_LIMIT", "12MB"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(getString(v, "STORAGE_DRIVER", StorageLocal)),
			BasePath:      getString(v, "STORAGE_BASE_PATH", ".data/attachments"),
			Bucket:        getString(v, "STORAGE_BUCKET", ""),
			Region:        getString(v, "STORAGE_REGION", "us-east-1"),
			Endpoint:      getString(v, "STORAGE_ENDPOINT", ""),
			AccessKey:     getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey:     getString(v, "STORAGE_SECRET_KEY", ""),
			MaxUploadSize: getString(v, "STORAGE_MAX_UPLOAD_SIZE", "10MB"),
		},
		Docs: DocsConfig{
			Enabled:  getBool(v, "DOCS_ENABLED", false),
			FilePath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica los valores obligatorios y los tamaños legibles.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET es requerido"))
	}
	if c.HTTP.BodyLimitBytes() <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_BODY_LIMIT inválido: %q", c.HTTP.BodyLimit))
	}
	if c.Storage.MaxUploadSizeBytes() <= 0 {
		errs = append(errs, fmt.Errorf("STORAGE_MAX_UPLOAD_SIZE inválido: %q", c.Storage.MaxUploadSize))
	}
	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.BasePath == "" {
			errs = append(errs, errors.New("STORAGE_BASE_PATH es requerido para el driver local"))
		}
	case StorageS3:
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("STORAGE_BUCKET es requerido para el driver s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER desconocido: %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
