package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"VoxStudio/internal/audio"
	"VoxStudio/internal/models"
	"VoxStudio/internal/music"
	"VoxStudio/pkg/config"
	"VoxStudio/pkg/logger"
	"VoxStudio/pkg/metrics"
	"VoxStudio/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 上传背景音乐，按原文件名落盘，重名时静默覆盖
func (h *Handlers) handleMusicUpload(c *gin.Context) {
	file, err := c.FormFile("music")
	if err != nil {
		response.Fail(c, "music file is required", nil)
		return
	}

	dst := filepath.Join(config.GlobalConfig.BackgroundMusicDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Error("failed to save music upload", zap.Error(err))
		response.Fail(c, "failed to save music file", nil)
		return
	}
	response.Success(c, "music uploaded", gin.H{"path": dst})
}

// 从视频站拉取音频作为背景音乐
func (h *Handlers) handleMusicFromYouTube(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "url is required", nil)
		return
	}

	path, err := music.DownloadAudio(c.Request.Context(), req.URL, config.GlobalConfig.BackgroundMusicDir())
	h.recordJob(models.JobKindDownload, "", req.URL, path, err)
	if err != nil {
		logger.Error("music download failed", zap.String("url", req.URL), zap.Error(err))
		response.Fail(c, "failed to download music", nil)
		return
	}
	response.Success(c, "music downloaded", gin.H{"path": path})
}

// 把背景音乐叠加到合成语音上
func (h *Handlers) handleMerge(c *gin.Context) {
	var req struct {
		UserFolder        string  `json:"userFolder" binding:"required"`
		AudioFile         string  `json:"audioFile" binding:"required"`
		MusicPath         string  `json:"musicPath" binding:"required"`
		FadeInMs          int     `json:"fadeInMs"`
		FadeOutMs         int     `json:"fadeOutMs"`
		VolumeReductionDB float64 `json:"volumeReductionDb"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "invalid merge request", nil)
		return
	}
	if req.FadeInMs < 0 || req.FadeOutMs < 0 || req.VolumeReductionDB < 0 {
		response.Fail(c, "fades and volume reduction must be non-negative", nil)
		return
	}

	cfg := config.GlobalConfig
	speechPath, err := h.fileMgr.Resolve(filepath.Join(cfg.GeneratedAudioDir(), req.UserFolder, req.AudioFile))
	if err != nil {
		response.Fail(c, "invalid audio path", nil)
		return
	}
	musicPath, err := h.fileMgr.Resolve(req.MusicPath)
	if err != nil {
		response.Fail(c, "invalid music path", nil)
		return
	}

	stem := strings.TrimSuffix(req.AudioFile, filepath.Ext(req.AudioFile))
	outputPath := filepath.Join(cfg.MergeAudioDir(), fmt.Sprintf("%s_%s_merged.mp3", req.UserFolder, stem))

	start := time.Now()
	result, err := audio.Merge(speechPath, musicPath, outputPath, audio.MergeOptions{
		FadeInMs:          req.FadeInMs,
		FadeOutMs:         req.FadeOutMs,
		VolumeReductionDB: req.VolumeReductionDB,
	})
	metrics.RecordMergeDuration(time.Since(start).Seconds())
	h.recordJob(models.JobKindMerge, req.UserFolder, req.AudioFile, result, err)
	if err != nil {
		logger.Error("merge failed",
			zap.String("speech", speechPath), zap.String("music", musicPath), zap.Error(err))
		response.Fail(c, "failed to merge audio", nil)
		return
	}

	response.Success(c, "audio merged", gin.H{
		"path":      result,
		"elapsedMs": time.Since(start).Milliseconds(),
	})
}
