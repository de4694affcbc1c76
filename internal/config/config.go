package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Pixabay  PixabayConfig  `mapstructure:"pixabay"`
	Database DatabaseConfig `mapstructure:"database"`
	Gallery  GalleryConfig  `mapstructure:"gallery"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// PixabayConfig holds the fixed parameters sent with every image search.
type PixabayConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	APIKeyEnv   string        `mapstructure:"api_key_env"` // Environment variable name for API key
	ImageType   string        `mapstructure:"image_type"`
	Orientation string        `mapstructure:"orientation"`
	SafeSearch  bool          `mapstructure:"safesearch"`
	PerPage     int           `mapstructure:"per_page"`
	Language    string        `mapstructure:"lang"`
	Timeout     time.Duration `mapstructure:"timeout"`
	// RateLimit is the sustained request rate allowed per second; Burst caps bursts.
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// ResolveEnvVars loads the API key from APIKeyEnv when no key is set directly.
func (c *PixabayConfig) ResolveEnvVars() {
	if c.APIKeyEnv != "" && c.APIKey == "" {
		if val := os.Getenv(c.APIKeyEnv); val != "" {
			c.APIKey = val
		}
	}
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite or postgres
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver specific connection string.
// Parameters: none.
// Returns:
//   - string: postgres key/value DSN or the sqlite file path.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.Path
}

// GalleryConfig controls the gallery sessions served over HTTP.
type GalleryConfig struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	HistoryLimit  int           `mapstructure:"history_limit"`
	RecordHistory bool          `mapstructure:"record_history"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("pixabay.api_key", "PIXABAY_API_KEY")
	v.BindEnv("pixabay.base_url", "PIXABAY_BASE_URL")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("server.port", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Pixabay.ResolveEnvVars()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("pixabay.base_url", "https://pixabay.com/api/")
	v.SetDefault("pixabay.image_type", "photo")
	v.SetDefault("pixabay.orientation", "horizontal")
	v.SetDefault("pixabay.safesearch", true)
	v.SetDefault("pixabay.per_page", 40)
	v.SetDefault("pixabay.lang", "en")
	v.SetDefault("pixabay.timeout", 15*time.Second)
	// Pixabay allows 100 requests per 60 seconds
	v.SetDefault("pixabay.rate_limit", 100.0/60.0)
	v.SetDefault("pixabay.burst", 5)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/pixgallery.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("gallery.session_ttl", 30*time.Minute)
	v.SetDefault("gallery.history_limit", 50)
	v.SetDefault("gallery.record_history", true)
}

// Validate checks the settings the image search cannot run without.
// Parameters: none.
// Returns:
//   - error: non-nil describing every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Pixabay.APIKey == "" {
		errs = append(errs, errors.New("pixabay.api_key is required (set PIXABAY_API_KEY)"))
	}
	if c.Pixabay.BaseURL == "" {
		errs = append(errs, errors.New("pixabay.base_url is required"))
	}
	if c.Pixabay.PerPage < 3 || c.Pixabay.PerPage > 200 {
		errs = append(errs, fmt.Errorf("pixabay.per_page must be between 3 and 200, got %d", c.Pixabay.PerPage))
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		errs = append(errs, fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver))
	}
	return errors.Join(errs...)
}
