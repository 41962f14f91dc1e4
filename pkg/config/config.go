package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fuentes de datos soportadas.
const (
	DataSourcePostgres = "postgres"
	DataSourceCSV      = "csv"
	DataSourceXLSX     = "xlsx"
)

// Proveedores de texto de recomendación.
const (
	AIProviderTemplate  = "template"
	AIProviderAnthropic = "anthropic"
	AIProviderGemini    = "gemini"
)

// Backends de la cola de notificaciones.
const (
	QueueMemory = "memory"
	QueueRedis  = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una vez en main y se inyecta; ningún componente lee el entorno por su cuenta.
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	DB         DBConfig
	Data       DataConfig
	Automation AutomationConfig
	Decision   DecisionConfig
	AI         AIConfig
	Auth       AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
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

// DataConfig origen del dataset de ventas e inventario.
type DataConfig struct {
	Source        string // postgres | csv | xlsx
	SalesPath     string // csv/xlsx
	InventoryPath string // csv; en xlsx puede ser el mismo libro (hoja "inventory")
}

// AutomationConfig endpoint de automatización (webhook n8n) y su cola de despacho.
type AutomationConfig struct {
	Endpoint       string
	TimeoutSeconds int
	MaxRetries     int // 0 o 1
	Queue          string
	QueueSize      int
	RedisAddr      string
	RedisKey       string
}

// Timeout duración por intento.
func (c AutomationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DecisionConfig parámetros por defecto del asignador y del asesor de reposición.
type DecisionConfig struct {
	LookbackDays      int
	RestockWindowDays int
	ThresholdRatio    float64
	CriticalStock     int
}

// AIConfig selección explícita del generador de texto.
type AIConfig struct {
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
}

// AuthConfig JWT y credencial del operador (hash bcrypt).
type AuthConfig struct {
	Secret               string
	Expiration           int // minutos
	Issuer               string
	OperatorUser         string
	OperatorPasswordHash string
	OperatorRole         string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATA_SOURCE, AUTOMATION_ENDPOINT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper construye la configuración aplicando valores por defecto.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "qcommerce-agent"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8000),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "quick_commerce"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Data: DataConfig{
			Source:        strings.ToLower(getString(v, "DATA_SOURCE", DataSourceCSV)),
			SalesPath:     getString(v, "DATA_SALES_PATH", "data/sales_data.csv"),
			InventoryPath: getString(v, "DATA_INVENTORY_PATH", "data/inventory_data.csv"),
		},
		Automation: AutomationConfig{
			Endpoint:       getString(v, "AUTOMATION_ENDPOINT", "http://localhost:5678/webhook/quick-commerce"),
			TimeoutSeconds: getInt(v, "AUTOMATION_TIMEOUT_SECONDS", 5),
			MaxRetries:     clamp(getInt(v, "AUTOMATION_MAX_RETRIES", 1), 0, 1),
			Queue:          strings.ToLower(getString(v, "AUTOMATION_QUEUE", QueueMemory)),
			QueueSize:      getInt(v, "AUTOMATION_QUEUE_SIZE", 128),
			RedisAddr:      getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisKey:       getString(v, "AUTOMATION_REDIS_KEY", "qcommerce:notifications"),
		},
		Decision: DecisionConfig{
			LookbackDays:      getInt(v, "DECISION_LOOKBACK_DAYS", 7),
			RestockWindowDays: getInt(v, "DECISION_RESTOCK_WINDOW_DAYS", 3),
			ThresholdRatio:    getFloat(v, "DECISION_THRESHOLD_RATIO", 0.2),
			CriticalStock:     getInt(v, "DECISION_CRITICAL_STOCK", 5),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", AIProviderTemplate)),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Auth: AuthConfig{
			Secret:               getString(v, "JWT_SECRET", ""),
			Expiration:           getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:               getString(v, "JWT_ISSUER", "qcommerce-agent"),
			OperatorUser:         getString(v, "OPERATOR_USER", "operations"),
			OperatorPasswordHash: getString(v, "OPERATOR_PASSWORD_HASH", ""),
			OperatorRole:         getString(v, "OPERATOR_ROLE", "operator"),
		},
	}
}

// Validate rechaza combinaciones que harían fallar el arranque más adelante.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case DataSourcePostgres, DataSourceCSV, DataSourceXLSX:
	default:
		return fmt.Errorf("config: DATA_SOURCE desconocido %q", c.Data.Source)
	}
	switch c.AI.Provider {
	case AIProviderTemplate, AIProviderAnthropic, AIProviderGemini:
	default:
		return fmt.Errorf("config: AI_PROVIDER desconocido %q", c.AI.Provider)
	}
	switch c.Automation.Queue {
	case QueueMemory, QueueRedis:
	default:
		return fmt.Errorf("config: AUTOMATION_QUEUE desconocido %q", c.Automation.Queue)
	}
	if c.Automation.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: AUTOMATION_TIMEOUT_SECONDS debe ser > 0")
	}
	if c.Automation.QueueSize <= 0 {
		return fmt.Errorf("config: AUTOMATION_QUEUE_SIZE debe ser > 0")
	}
	if c.Decision.LookbackDays <= 0 || c.Decision.RestockWindowDays <= 0 {
		return fmt.Errorf("config: las ventanas de decisión deben ser > 0")
	}
	if c.Decision.ThresholdRatio <= 0 {
		return fmt.Errorf("config: DECISION_THRESHOLD_RATIO debe ser > 0")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
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
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return def
			}
			return f
		}
		return v.GetFloat64(key)
	}
	return def
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
