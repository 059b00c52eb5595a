package handlers

import (
	"path/filepath"

	"VoxStudio/internal/files"
	"VoxStudio/pkg/errors"
	"VoxStudio/pkg/response"

	"github.com/gin-gonic/gin"
)

// 递归列举四个数据根目录下的所有文件
func (h *Handlers) handleListFiles(c *gin.Context) {
	entries, err := h.fileMgr.List()
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, "get files", entries)
}

// 按字节下载任意受管文件
func (h *Handlers) handleDownloadFile(c *gin.Context) {
	path, err := h.fileMgr.Resolve(c.Query("path"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// 内联播放音频文件
func (h *Handlers) handlePlayFile(c *gin.Context) {
	path, err := h.fileMgr.Resolve(c.Query("path"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	if !files.IsAudio(path) {
		response.FailWithError(c, errors.WithCode(errors.CodeNotAudio, "not an audio file"))
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}

// 删除文件，单击即删，无恢复
func (h *Handlers) handleDeleteFile(c *gin.Context) {
	path := c.Query("path")
	if err := h.fileMgr.Delete(path); err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, "file deleted", gin.H{"path": path})
}
