package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"VoxStudio/pkg/cache"
	"VoxStudio/pkg/logger"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	sheetName     = "Sheet1"
	usersCacheKey = "registry:users"
	cacheTTL      = 30 * time.Second
)

// Registry 用户注册表，后端为 xlsx 工作簿，只追加
//
// 同进程内的写入通过互斥锁串行化，跨进程并发写仍是最后写入者胜出。
type Registry struct {
	path       string // 工作簿路径
	recordsDir string // 原始录音目录，用于探测可用的 user_id
	cache      cache.Cache
	mu         sync.Mutex
}

// New 创建注册表
func New(path, recordsDir string, c cache.Cache) *Registry {
	return &Registry{path: path, recordsDir: recordsDir, cache: c}
}

// GenerateUserID 生成带时间戳和随机后缀的用户标识
func GenerateUserID() string {
	return "U" + time.Now().Format("20060102-150405") + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
}

// SlugName 将展示名转为文件系统安全的小写下划线形式，空名回退为 user
func SlugName(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.ReplaceAll(base, string(filepath.Separator), "_")
	base = strings.ReplaceAll(base, "/", "_")
	if base == "" {
		base = "user"
	}
	return base
}

// ClaimUserID 从1开始线性探测，返回第一个没有对应原始录音文件的 {base}_{NNN}
func (r *Registry) ClaimUserID(name string) string {
	base := SlugName(name)
	for index := 1; ; index++ {
		userID := fmt.Sprintf("%s_%03d", base, index)
		path := filepath.Join(r.recordsDir, userID+".mp3")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return userID
		}
	}
}

// RecordPath 某用户原始录音文件路径
func (r *Registry) RecordPath(userID string) string {
	return filepath.Join(r.recordsDir, userID+".mp3")
}

// SaveUserData 追加一行注册记录，工作簿不存在时先创建表头
// 重复的 user_id 不做去重，按原样追加
func (r *Registry) SaveUserData(userID, voiceID, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return err
	}

	row := []interface{}{userID, voiceID, name, email, time.Now().Format("2006-01-02 15:04:05")}
	cell := fmt.Sprintf("A%d", len(rows)+1)
	if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
		return err
	}
	if err := f.SaveAs(r.path); err != nil {
		return err
	}

	if r.cache != nil {
		_ = r.cache.Delete(context.Background(), usersCacheKey)
	}
	return nil
}

// LoadExistingUsers 扫描表头之后的所有行，返回 user_id 到 voice_id 的映射
// 工作簿不存在或读取失败时返回空映射，不报错
func (r *Registry) LoadExistingUsers() map[string]string {
	if r.cache != nil {
		if raw, ok := r.cache.Get(context.Background(), usersCacheKey); ok {
			if s, ok := raw.(string); ok {
				users := map[string]string{}
				if err := json.Unmarshal([]byte(s), &users); err == nil {
					return users
				}
			}
		}
	}

	users := map[string]string{}
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return users
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		logger.Warn("failed to open user workbook", zap.String("path", r.path), zap.Error(err))
		return users
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		logger.Warn("failed to read user workbook", zap.Error(err))
		return users
	}
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		users[row[0]] = row[1]
	}

	if r.cache != nil {
		if raw, err := json.Marshal(users); err == nil {
			_ = r.cache.Set(context.Background(), usersCacheKey, string(raw), cacheTTL)
		}
	}
	return users
}

func (r *Registry) openOrCreate() (*excelize.File, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(r.path), os.ModePerm); err != nil {
			return nil, err
		}
		f := excelize.NewFile()
		header := []interface{}{"User_ID", "Voice_ID", "Name", "Email", "Timestamp"}
		if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
			f.Close()
			return nil, err
		}
		return f, nil
	}
	return excelize.OpenFile(r.path)
}
