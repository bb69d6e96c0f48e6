package configs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abisalde/inventory-service/pkg/config"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"

	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
)

type Config struct {
	App struct {
		Name string `yaml:"name"`
		Env  string `yaml:"env"`
		Port string `yaml:"port"`
	} `yaml:"app"`

	DB struct {
		Driver       string        `yaml:"driver"`
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		Name         string        `yaml:"dbname"`
		SQLitePath   string        `yaml:"sqlite_path"`
		Migrate      bool          `yaml:"migrate"`
		MaxOpenConns int           `yaml:"max_open_conns"`
		MaxIdleConns int           `yaml:"max_idle_conns"`
		ConnMaxLife  time.Duration `yaml:"conn_max_lifetime"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"redis_addr"`
		Password string `yaml:"redis_password"`
		DB       int    `yaml:"redis_db"`
	} `yaml:"redis"`

	Auth struct {
		JWTSecret    string        `yaml:"jwt_secret"`
		CookieSecret string        `yaml:"cookie_secret"`
		TokenTTL     time.Duration `yaml:"token_ttl"`
		CookieSecure bool          `yaml:"cookie_secure"`
		BcryptCost   int           `yaml:"bcrypt_cost"`
	} `yaml:"auth"`

	Signup struct {
		CodeTTL    time.Duration `yaml:"code_ttl"`
		CodeLength int           `yaml:"code_length"`
	} `yaml:"signup"`

	Mail struct {
		Provider     string `yaml:"provider"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     string `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_username"`
		SMTPPassword string `yaml:"smtp_password"`
		SenderEmail  string `yaml:"sender_email"`
		EmailAPIKey  string `yaml:"email_api_key"`
	} `yaml:"mail"`

	CORS struct {
		FrontendOrigin string `yaml:"frontend_origin"`
	} `yaml:"cors"`

	RateLimit struct {
		Requests int           `yaml:"requests"`
		Window   time.Duration `yaml:"window"`
	} `yaml:"rate_limit"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// Load reads internal/configs/{dev,prod}.yml for env and resolves ${VAR}
// references through the default secret chain.
func Load(env string) (*Config, error) {
	configFile := "dev.yml"
	if env == EnvProduction {
		configFile = "prod.yml"
	}

	configPath := filepath.Join("internal", "configs", configFile)
	return LoadFile(configPath, env, config.DefaultSecretProvider(filepath.Join("..", "secrets")))
}

func LoadFile(path, env string, secrets config.SecretProvider) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	ctx := context.Background()
	var lookupErr error
	expanded := os.Expand(string(raw), func(key string) string {
		value, err := secrets.GetSecret(ctx, key)
		if err != nil && !errors.Is(err, config.ErrSecretNotFound) && lookupErr == nil {
			lookupErr = err
		}
		return value
	})
	if lookupErr != nil {
		return nil, fmt.Errorf("resolve config secrets: %w", lookupErr)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if cfg.App.Env == "" {
		cfg.App.Env = env
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "inventory-service"
	}
	if c.App.Env == "" {
		c.App.Env = EnvDevelopment
	}
	if c.App.Port == "" {
		c.App.Port = "8080"
	}
	if c.DB.Driver == "" {
		c.DB.Driver = DriverMySQL
	}
	if c.DB.MaxOpenConns == 0 {
		c.DB.MaxOpenConns = 25
	}
	if c.DB.MaxIdleConns == 0 {
		c.DB.MaxIdleConns = 10
	}
	if c.DB.ConnMaxLife == 0 {
		c.DB.ConnMaxLife = time.Hour
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
	if c.Signup.CodeTTL == 0 {
		c.Signup.CodeTTL = 10 * time.Minute
	}
	if c.Signup.CodeLength == 0 {
		c.Signup.CodeLength = 6
	}
	if c.Mail.Provider == "" {
		c.Mail.Provider = MailProviderSMTP
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 5
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.CookieSecret != "" {
		key, err := base64.StdEncoding.DecodeString(c.Auth.CookieSecret)
		if err != nil {
			errs = append(errs, fmt.Errorf("auth.cookie_secret must be base64: %w", err))
		} else if n := len(key); n != 16 && n != 24 && n != 32 {
			errs = append(errs, fmt.Errorf("auth.cookie_secret must decode to 16, 24 or 32 bytes, got %d", n))
		}
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Signup.CodeTTL <= 0 {
		errs = append(errs, errors.New("signup.code_ttl must be positive"))
	}
	if c.Signup.CodeLength <= 0 {
		errs = append(errs, errors.New("signup.code_length must be positive"))
	}

	switch c.DB.Driver {
	case DriverMySQL:
		if c.DB.Host == "" || c.DB.Name == "" {
			errs = append(errs, errors.New("database.host and database.dbname are required for mysql"))
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			errs = append(errs, errors.New("database.sqlite_path is required for sqlite3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DB.Driver))
	}

	switch c.Mail.Provider {
	case MailProviderSMTP:
		if c.Mail.SMTPHost == "" {
			errs = append(errs, errors.New("mail.smtp_host is required for smtp"))
		}
	case MailProviderResend:
		if c.Mail.EmailAPIKey == "" {
			errs = append(errs, errors.New("mail.email_api_key is required for resend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown mail provider %q", c.Mail.Provider))
	}

	if c.Redis.Addr != "" && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("rate_limit.requests and rate_limit.window must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}
