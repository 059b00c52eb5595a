package config

import (
	"VoxStudio/pkg/logger"
	"VoxStudio/pkg/util"
	"log"
	"os"
	"path/filepath"
)

// Config 全局配置
type Config struct {
	Addr      string `env:"ADDR"`
	Mode      string `env:"MODE"`
	APIPrefix string `env:"API_PREFIX"`

	DataDir  string `env:"DATA_DIR"` // 所有音频数据目录的根
	DBDriver string `env:"DB_DRIVER"`
	DSN      string `env:"DSN"`

	Log logger.LogConfig

	// 语音克隆 / 合成服务商
	ProviderEngine  string `env:"PROVIDER_ENGINE"` // speechify | openai
	ProviderAPIKey  string `env:"PROVIDER_API_KEY"`
	ProviderBaseURL string `env:"PROVIDER_BASE_URL"`

	CacheType     string `env:"CACHE_TYPE"` // gocache | lru | redis
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	SynthesisRate string `env:"SYNTHESIS_RATE_LIMIT"` // ulule/limiter 格式，如 "30-M"

	BackupEnabled  bool   `env:"BACKUP_ENABLED"`
	BackupPath     string `env:"BACKUP_PATH"`
	BackupSchedule string `env:"BACKUP_SCHEDULE"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`
}

var GlobalConfig *Config

// Load 加载 .env 与全局配置
func Load() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := util.LoadEnv(env); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	GlobalConfig = &Config{
		Addr:      util.GetEnvDefault("ADDR", ":8080"),
		Mode:      util.GetEnvDefault("MODE", "debug"),
		APIPrefix: util.GetEnvDefault("API_PREFIX", "/api"),
		DataDir:   util.GetEnvDefault("DATA_DIR", "data"),
		DBDriver:  util.GetEnv("DB_DRIVER"),
		DSN:       util.GetEnvDefault("DSN", filepath.Join("data", "voxstudio.db")),
		Log: logger.LogConfig{
			Level:      util.GetEnv("LOG_LEVEL"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},
		ProviderEngine:  util.GetEnvDefault("PROVIDER_ENGINE", "speechify"),
		ProviderAPIKey:  util.GetEnv("PROVIDER_API_KEY"),
		ProviderBaseURL: util.GetEnv("PROVIDER_BASE_URL"),
		CacheType:       util.GetEnvDefault("CACHE_TYPE", "gocache"),
		RedisAddr:       util.GetEnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   util.GetEnv("REDIS_PASSWORD"),
		RedisDB:         int(util.GetIntEnv("REDIS_DB")),
		SynthesisRate:   util.GetEnvDefault("SYNTHESIS_RATE_LIMIT", "30-M"),
		BackupEnabled:   util.GetBoolEnv("BACKUP_ENABLED"),
		BackupPath:      util.GetEnvDefault("BACKUP_PATH", "backups"),
		BackupSchedule:  util.GetEnvDefault("BACKUP_SCHEDULE", "0 3 * * *"),
		MinioEndpoint:   util.GetEnv("MINIO_ENDPOINT"),
		MinioAccessKey:  util.GetEnv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  util.GetEnv("MINIO_SECRET_KEY"),
		MinioBucket:     util.GetEnv("MINIO_BUCKET"),
		MinioUseSSL:     util.GetBoolEnv("MINIO_USE_SSL"),
	}
	return nil
}

// UserRecordsDir 原始录音目录
func (c *Config) UserRecordsDir() string { return filepath.Join(c.DataDir, "User_Records") }

// GeneratedAudioDir 合成语音目录（按用户分子目录）
func (c *Config) GeneratedAudioDir() string { return filepath.Join(c.DataDir, "Generated_Audio") }

// MergeAudioDir 混音输出目录
func (c *Config) MergeAudioDir() string { return filepath.Join(c.DataDir, "Merge_Audio") }

// BackgroundMusicDir 背景音乐目录
func (c *Config) BackgroundMusicDir() string { return filepath.Join(c.DataDir, "Background_Music") }

// RegistryPath 用户注册表工作簿路径
func (c *Config) RegistryPath() string { return filepath.Join(c.DataDir, "User_Data.xlsx") }

// DataDirs 四个数据根目录
func (c *Config) DataDirs() []string {
	return []string{
		c.UserRecordsDir(),
		c.GeneratedAudioDir(),
		c.MergeAudioDir(),
		c.BackgroundMusicDir(),
	}
}
