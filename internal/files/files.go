package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"VoxStudio/pkg/errors"
)

// Entry 目录树中的一个文件
type Entry struct {
	Path    string    `json:"path"` // 相对于进程工作目录的路径
	Name    string    `json:"name"`
	Root    string    `json:"root"` // 所属数据根目录
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
	Audio   bool      `json:"audio"` // 可内联播放
}

// Manager 在固定的数据根目录集合内列举、校验和删除文件
type Manager struct {
	roots []string
}

func NewManager(roots []string) *Manager {
	return &Manager{roots: roots}
}

// List 递归列举所有根目录下的文件，缺失的根目录跳过
func (m *Manager) List() ([]Entry, error) {
	entries := []Entry{}
	for _, root := range m.roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			entries = append(entries, Entry{
				Path:    path,
				Name:    d.Name(),
				Root:    root,
				Size:    info.Size(),
				ModTime: info.ModTime(),
				Audio:   IsAudio(path),
			})
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list "+root)
		}
	}
	return entries, nil
}

// Resolve 校验路径位于某个数据根目录之内，拒绝越界访问
func (m *Manager) Resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	for _, root := range m.roots {
		rel, err := filepath.Rel(root, clean)
		if err != nil {
			continue
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return clean, nil
	}
	return "", errors.WithCode(errors.CodeInvalidPath, "path outside managed directories: "+path)
}

// Delete 按路径删除文件，无确认无恢复
func (m *Manager) Delete(path string) error {
	resolved, err := m.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(resolved); err != nil {
		return errors.Wrapf(err, "failed to delete %s", path)
	}
	return nil
}

// IsAudio 是否为可内联播放的音频文件
func IsAudio(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav":
		return true
	}
	return false
}
