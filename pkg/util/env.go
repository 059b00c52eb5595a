package util

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// LoadEnv 根据运行环境加载对应的 .env 文件（.env.development / .env.production）
// 找不到环境专属文件时回退到 .env
func LoadEnv(env string) error {
	if env != "" {
		if err := godotenv.Load(".env." + env); err == nil {
			return nil
		}
	}
	return godotenv.Load()
}

// GetEnv 获取环境变量（去除首尾空白）
func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// GetEnvDefault 获取环境变量，为空时返回默认值
func GetEnvDefault(key, def string) string {
	if v := GetEnv(key); v != "" {
		return v
	}
	return def
}

// GetIntEnv 获取整型环境变量，解析失败返回 0
func GetIntEnv(key string) int64 {
	return cast.ToInt64(GetEnv(key))
}

// GetBoolEnv 获取布尔环境变量（1/true/yes 均视为 true）
func GetBoolEnv(key string) bool {
	v := strings.ToLower(GetEnv(key))
	if v == "yes" {
		return true
	}
	return cast.ToBool(v)
}
