package stores

import "io"

// Store 对象存储抽象，目前仅用于备份归档的异地上传
type Store interface {
	Write(key string, r io.Reader, size int64) error
	Read(key string) (io.ReadCloser, int64, error)
	Exists(key string) (bool, error)
	Delete(key string) error
}
