package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de almacenamiento soportados (STORAGE_BACKEND).
const (
	BackendMemory    = "memory"
	BackendMongoDB   = "mongodb"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Storage    StorageConfig
	DB         DBConfig
	Mongo      MongoConfig
	Firestore  FirestoreConfig
	Firebase   FirebaseConfig
	Cloudinary CloudinaryConfig
	JWT        JWTConfig
	Catalog    CatalogConfig
	Redis      RedisConfig
	Telemetry  TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env        string // development, staging, production
	Name       string
	LogLevel   string
	AdminPhone string // teléfono que recibe rol admin al registrarse
	PublicURL  string // URL de la tienda; se imprime como QR en la carta
}

// StorageConfig selecciona el backend de documentos.
type StorageConfig struct {
	Backend string
}

// DBConfig configuración de PostgreSQL (backend "postgres").
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

// MongoConfig backend "mongodb".
type MongoConfig struct {
	URI      string
	Database string
}

// FirestoreConfig backend "firestore". CredentialsFile vacío = credenciales por defecto del entorno.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

// FirebaseConfig proyecto de Firebase Authentication para el acceso con Google y la
// vinculación de teléfono. Por defecto reutiliza el proyecto y credenciales de Firestore.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

// Enabled indica si hay proyecto configurado.
func (c FirebaseConfig) Enabled() bool { return c.ProjectID != "" }

// CloudinaryConfig credenciales del host de imágenes.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Enabled indica si hay credenciales completas.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// CatalogConfig ajustes del catálogo público y del sincronizador de vínculos.
type CatalogConfig struct {
	CacheTTLSeconds int
	SyncConcurrency int
}

// RedisConfig canal opcional para difundir la invalidación de la caché del catálogo
// entre varias instancias. URL vacía = cada instancia invalida solo su caché local.
type RedisConfig struct {
	URL     string
	Channel string
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.URL != "" }

// TelemetryConfig exportación de trazas OTLP/gRPC. Endpoint vacío = trazas desactivadas.
type TelemetryConfig struct {
	OTLPEndpoint string // host:puerto del collector
	Insecure     bool
}

// Enabled indica si hay collector configurado.
func (c TelemetryConfig) Enabled() bool { return c.OTLPEndpoint != "" }

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_BACKEND, MONGODB_URI, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v), nil
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) *Config {
	firestore := FirestoreConfig{
		ProjectID:       getString(v, "FIRESTORE_PROJECT_ID", ""),
		CredentialsFile: getString(v, "FIRESTORE_CREDENTIALS_FILE", ""),
	}
	return &Config{
		App: AppConfig{
			Env:        getString(v, "APP_ENV", "development"),
			Name:       getString(v, "APP_NAME", "foodzo-api"),
			LogLevel:   getString(v, "LOG_LEVEL", "info"),
			AdminPhone: getString(v, "ADMIN_PHONE", ""),
			PublicURL:  getString(v, "APP_PUBLIC_URL", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Backend: NormalizeBackend(getString(v, "STORAGE_BACKEND", BackendMemory)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "foodzo"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGODB_URI", ""),
			Database: getString(v, "MONGODB_DB", "foodzo"),
		},
		Firestore: firestore,
		Firebase: FirebaseConfig{
			ProjectID:       getString(v, "FIREBASE_PROJECT_ID", firestore.ProjectID),
			CredentialsFile: getString(v, "FIREBASE_CREDENTIALS_FILE", firestore.CredentialsFile),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getString(v, "CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getString(v, "CLOUDINARY_API_KEY", ""),
			APISecret: getString(v, "CLOUDINARY_API_SECRET", ""),
			Folder:    getString(v, "CLOUDINARY_FOLDER", "foodzo"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "foodzo-api"),
		},
		Catalog: CatalogConfig{
			CacheTTLSeconds: getInt(v, "CATALOG_CACHE_TTL_SECONDS", 30),
			SyncConcurrency: getInt(v, "SYNC_CONCURRENCY", 8),
		},
		Redis: RedisConfig{
			URL:     getString(v, "REDIS_URL", ""),
			Channel: getString(v, "REDIS_CATALOG_CHANNEL", "foodzo:catalog:invalidate"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getBool(v, "OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}
}

// NormalizeBackend pasa a minúsculas y resuelve alias ("mongo", "pg", "postgresql").
func NormalizeBackend(name string) string {
	switch b := strings.ToLower(strings.TrimSpace(name)); b {
	case "":
		return BackendMemory
	case "mongo":
		return BackendMongoDB
	case "pg", "postgresql":
		return BackendPostgres
	default:
		return b
	}
}

// Validate comprueba que el backend elegido tenga sus parámetros obligatorios.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendMongoDB:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGODB_URI es obligatorio con STORAGE_BACKEND=mongodb"))
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			errs = append(errs, errors.New("FIRESTORE_PROJECT_ID es obligatorio con STORAGE_BACKEND=firestore"))
		}
	case BackendPostgres:
		if c.DB.DatabaseURL == "" && c.DB.Host == "" {
			errs = append(errs, errors.New("DATABASE_URL o DB_HOST es obligatorio con STORAGE_BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND desconocido: %q", c.Storage.Backend))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET es obligatorio"))
	}
	if c.Catalog.SyncConcurrency < 1 {
		errs = append(errs, errors.New("SYNC_CONCURRENCY debe ser mayor que 0"))
	}
	return errors.Join(errs...)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
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

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
