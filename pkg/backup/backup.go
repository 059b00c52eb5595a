package backup

import (
	"VoxStudio/pkg/config"
	"VoxStudio/pkg/logger"
	stores "VoxStudio/pkg/storage"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartScheduler 启动备份调度器
func StartScheduler() *cron.Cron {
	c := cron.New()

	schedule := config.GlobalConfig.BackupSchedule
	_, err := c.AddFunc(schedule, func() {
		if err := Execute(); err != nil {
			logger.Warn("backup failed", zap.Error(err))
		} else {
			logger.Info("backup completed")
		}
	})
	if err != nil {
		logger.Warn("invalid backup schedule", zap.String("schedule", schedule), zap.Error(err))
		return c
	}

	c.Start()
	return c
}

// Execute 备份用户注册表和任务库
func Execute() error {
	cfg := config.GlobalConfig
	stamp := time.Now().Format("20060102_150405")

	targets := map[string]string{
		cfg.RegistryPath(): fmt.Sprintf("user_data_%s.xlsx", stamp),
	}
	if cfg.DBDriver == "" || cfg.DBDriver == "sqlite" {
		targets[cfg.DSN] = fmt.Sprintf("voxstudio_%s.db", stamp)
	}

	if err := os.MkdirAll(cfg.BackupPath, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create backup directory: %v", err)
	}

	var store stores.Store
	if cfg.MinioEndpoint != "" {
		store = stores.NewMinioStore(stores.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	}

	for src, name := range targets {
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		dst := filepath.Join(cfg.BackupPath, name)
		if err := copyFile(src, dst); err != nil {
			return err
		}
		if store != nil {
			if err := uploadFile(store, dst, name); err != nil {
				logger.Warn("backup upload failed", zap.String("file", name), zap.Error(err))
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening source file: %v", err)
	}
	defer source.Close()

	dest, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("error creating destination file: %v", err)
	}
	defer dest.Close()

	_, err = io.Copy(dest, source)
	return err
}

func uploadFile(store stores.Store, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}
	return store.Write("backups/"+key, f, st.Size())
}
