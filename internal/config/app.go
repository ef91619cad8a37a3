package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable pool_max_conns=10",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Scheduler struct {
	IntervalHours int `mapstructure:"interval_hours"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

// Source configures where rates come from. The JSON mirror is preferred
// when both URLs are set; the HTML page is the scrape fallback. Known
// codes are everything tracked internally, public codes the curated
// subset shown to storefront users.
type Source struct {
	MirrorURL   string   `mapstructure:"mirror_url"`
	ScrapeURL   string   `mapstructure:"scrape_url"`
	KnownCodes  []string `mapstructure:"known_codes"`
	PublicCodes []string `mapstructure:"public_codes"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Logging    Logging    `mapstructure:"logging"`
	Source     Source     `mapstructure:"source"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional; everything can come from config.yaml or real env
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("http_client.timeout_seconds", 8)
	viper.SetDefault("scheduler.interval_hours", 24)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("source.known_codes", []string{"USD", "EUR", "MLC", "CAD", "MXN"})
	viper.SetDefault("source.public_codes", []string{"USD", "EUR", "MLC"})

	// http server env vars
	_ = viper.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate source env vars
	_ = viper.BindEnv("source.mirror_url", "RATES_MIRROR_URL")
	_ = viper.BindEnv("source.scrape_url", "RATES_SCRAPE_URL")

	// scheduler env vars
	_ = viper.BindEnv("scheduler.interval_hours", "SCHEDULER_INTERVAL_HOURS")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
