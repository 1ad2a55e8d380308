package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB          DBConfig
	Server      ServerConfig
	Redis       RedisConfig
	Model       ModelConfig
	Quiz        QuizConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
	Cache       CacheConfig
	Logger      LoggerConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ModelConfig configures the generative model client. Provider selects the
// adapter ("googleai", "openai"); an empty APIKey leaves the client
// unconfigured and every pipeline call fails fast with 503.
type ModelConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	Name     string        `yaml:"name"`
	BaseURL  string        `yaml:"base_url"` // openai-compatible gateways only
	Timeout  time.Duration `yaml:"timeout"`
}

// QuizConfig holds the pipeline knobs.
type QuizConfig struct {
	QuestionCount   int `yaml:"question_count"`
	MinContentChars int `yaml:"min_content_chars"`
	MaxSourceChars  int `yaml:"max_source_chars"`
}

type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

type GoogleOAuthConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type CacheConfig struct {
	QuizRecordTTL time.Duration `yaml:"quiz_record_ttl"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Model: ModelConfig{
			Provider: viper.GetString("model.provider"),
			APIKey:   viper.GetString("model.api_key"),
			Name:     viper.GetString("model.name"),
			BaseURL:  viper.GetString("model.base_url"),
			Timeout:  viper.GetDuration("model.timeout"),
		},
		Quiz: QuizConfig{
			QuestionCount:   viper.GetInt("quiz.question_count"),
			MinContentChars: viper.GetInt("quiz.min_content_chars"),
			MaxSourceChars:  viper.GetInt("quiz.max_source_chars"),
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl"),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     viper.GetString("google_oauth.client_id"),
			ClientSecret: viper.GetString("google_oauth.client_secret"),
			RedirectURL:  viper.GetString("google_oauth.redirect_url"),
		},
		Cache: CacheConfig{
			QuizRecordTTL: viper.GetDuration("cache.quiz_record_ttl"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment variables override file values.
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiKey := os.Getenv("MODEL_API_KEY"); apiKey != "" {
		config.Model.APIKey = apiKey
	}
	if provider := os.Getenv("MODEL_PROVIDER"); provider != "" {
		config.Model.Provider = provider
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("quiz.question_count", 5)
	viper.SetDefault("quiz.min_content_chars", 50)
	viper.SetDefault("quiz.max_source_chars", 8000)
	viper.SetDefault("model.timeout", "20s")
	viper.SetDefault("model.name", "gemini-1.5-flash")
	viper.SetDefault("jwt.access_token_ttl", "15m")
	viper.SetDefault("jwt.refresh_token_ttl", "168h")
	viper.SetDefault("cache.quiz_record_ttl", "24h")
}

func (c *Config) GetDSN() string {
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
