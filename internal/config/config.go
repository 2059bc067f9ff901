// Package config loads the application configuration from a TOML file,
// trying a few candidate paths so the binary works from the repo root and
// from package directories (tests).
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// MainConfig holds basic server settings.
type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Mode    string `toml:"mode"` // "dev" or "release"
}

// MysqlConfig holds the persistent-store connection settings.
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig holds cache connection settings.
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	Db       int    `toml:"db"`
	// Worker pool used for asynchronous cache updates.
	WorkerNum    int `toml:"workerNum"`
	TaskChanSize int `toml:"taskChanSize"`
}

// LogConfig configures zap output and lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`    // MB per file
	MaxBackups int    `toml:"maxBackups"` // rotated files kept
	MaxAge     int    `toml:"maxAge"`     // days kept
	Level      string `toml:"level"`
}

// KafkaConfig selects the message broker mode and kafka endpoints.
type KafkaConfig struct {
	MessageMode string `toml:"messageMode"` // "channel" or "kafka"
	HostPort    string `toml:"hostPort"`
	ChatTopic   string `toml:"chatTopic"`
	Partition   int    `toml:"partition"`
	Timeout     int    `toml:"timeout"` // seconds
}

// MinioConfig holds blob-store settings for uploaded media.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"accessKey"`
	SecretKey string `toml:"secretKey"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"useSSL"`
	PublicURL string `toml:"publicURL"` // base URL returned to clients
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret             string `toml:"secret"`
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // minutes
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // hours
}

// SnowflakeConfig holds the id-generator node settings.
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 0-1023, unique per instance
}

// Config aggregates all sections.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	MinioConfig     `toml:"minioConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

var config *Config

// LoadConfig reads the first configuration file found among the candidate
// paths.
func LoadConfig() error {
	if config == nil {
		config = new(Config)
	}
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}
	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}
	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig returns the lazily-loaded global configuration.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // fall back to zero values
	}
	return config
}
