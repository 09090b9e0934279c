package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	EnableLatency bool `mapstructure:"enable_latency"`
	EnableScores  bool `mapstructure:"enable_scores"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Models     ModelsConfig     `mapstructure:"models"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
}

type ServerConfig struct {
	Port             int    `mapstructure:"port"`
	MetricsPort      int    `mapstructure:"metrics_port"`
	SecretKey        string `mapstructure:"secret_key"`
	CorsAllowOrigins string `mapstructure:"cors_allow_origins"`
	Workers          int    `mapstructure:"workers"`
}

type ModerationConfig struct {
	AutoApproveThreshold float64 `mapstructure:"auto_approve_threshold"`
	RejectThreshold      float64 `mapstructure:"reject_threshold"`
	BatchWorkers         int     `mapstructure:"batch_workers"`
	MaxBatchSize         int     `mapstructure:"max_batch_size"`
}

type ModelsConfig struct {
	Dir                string        `mapstructure:"dir"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

// Settings returns the kafka section in the loose form the exporter validates.
func (k KafkaConfig) Settings() map[string]interface{} {
	return map[string]interface{}{
		"host":  k.Host,
		"port":  k.Port,
		"topic": k.Topic,
	}
}

var globalConfig Config

func Load(configPath string) error {
	globalConfig = Config{}
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("⚠️ Warning: Could not load main config file: %v", err)
	}
	setDefaultValues()
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	c := &globalConfig
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9090
	}
	if c.Server.CorsAllowOrigins == "" {
		c.Server.CorsAllowOrigins = "*"
	}
	if c.Server.Workers == 0 {
		c.Server.Workers = 4
	}
	if c.Moderation.AutoApproveThreshold == 0 && c.Moderation.RejectThreshold == 0 {
		c.Moderation.AutoApproveThreshold = 0.85
		c.Moderation.RejectThreshold = 0.60
	}
	if c.Moderation.MaxBatchSize == 0 {
		c.Moderation.MaxBatchSize = 500
	}
	if c.Models.Dir == "" {
		c.Models.Dir = "models"
	}
	if c.Models.BreakerTimeout == 0 {
		c.Models.BreakerTimeout = 30 * time.Second
	}
	if c.Models.BreakerMaxFailures == 0 {
		c.Models.BreakerMaxFailures = 3
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "listing-decisions"
	}
}

func GetConfig() *Config {
	return &globalConfig
}
