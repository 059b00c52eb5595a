package music

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"VoxStudio/internal/audio"
	"VoxStudio/pkg/logger"

	"github.com/google/uuid"
	youtube "github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// DownloadAudio 拉取视频的最佳音频流，转码为 MP3 存入 outputDir
//
// 输出文件以视频标题命名。网络错误、无音频流或转码失败都返回错误。
func DownloadAudio(ctx context.Context, url, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", err
	}

	client := youtube.Client{}
	video, err := client.GetVideoContext(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to resolve video: %w", err)
	}

	format := bestAudioFormat(video)
	if format == nil {
		return "", fmt.Errorf("no audio stream available for %s", url)
	}

	stream, _, err := client.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("failed to open audio stream: %w", err)
	}
	defer stream.Close()

	tmp := filepath.Join(outputDir, ".vox-dl-"+uuid.NewString()[:8])
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to download audio stream: %w", err)
	}
	f.Close()

	out := filepath.Join(outputDir, sanitizeTitle(video.Title)+".mp3")
	if err := audio.TranscodeToMP3(tmp, out); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to transcode audio: %w", err)
	}
	os.Remove(tmp)

	logger.Info("downloaded background music", zap.String("title", video.Title), zap.String("path", out))
	return out, nil
}

// bestAudioFormat 选码率最高的纯音频流
func bestAudioFormat(video *youtube.Video) *youtube.Format {
	var best *youtube.Format
	for i := range video.Formats {
		f := &video.Formats[i]
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best
}

// sanitizeTitle 去掉标题中不能入文件名的字符
func sanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\x00", "")
	title = replacer.Replace(title)
	if title == "" {
		title = "background_music"
	}
	return title
}
