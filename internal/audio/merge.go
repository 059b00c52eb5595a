package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"VoxStudio/pkg/logger"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// MergeOptions 混音参数
type MergeOptions struct {
	FadeInMs          int     // 背景乐淡入时长（毫秒）
	FadeOutMs         int     // 背景乐淡出时长（毫秒）
	VolumeReductionDB float64 // 背景乐衰减量（分贝）
}

// Merge 把背景乐叠加到语音上并导出 MP3
//
// 背景乐重采样到语音的采样率、截断到语音时长（不循环补齐），
// 施加线性淡入淡出和音量衰减后从零点叠加。中间结果先落 WAV，
// 再经 ffmpeg 转码为 MP3。
func Merge(speechPath, musicPath, outputPath string, opts MergeOptions) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpWav := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".tmp.wav"
	if err := MixdownWAV(speechPath, musicPath, tmpWav, opts); err != nil {
		return "", err
	}

	if err := TranscodeToMP3(tmpWav, outputPath); err != nil {
		os.Remove(tmpWav)
		return "", fmt.Errorf("failed to encode merged audio: %w", err)
	}
	os.Remove(tmpWav)

	logger.Info("merged audio exported", zap.String("output", outputPath))
	return outputPath, nil
}

// MixdownWAV 完成解码、对齐、淡化、叠加，并导出 WAV 中间文件
func MixdownWAV(speechPath, musicPath, wavOut string, opts MergeOptions) error {
	speech, speechFormat, err := decode(speechPath)
	if err != nil {
		return fmt.Errorf("failed to decode speech: %w", err)
	}
	defer speech.Close()

	music, musicFormat, err := decode(musicPath)
	if err != nil {
		return fmt.Errorf("failed to decode music: %w", err)
	}
	defer music.Close()

	// 语音先入缓冲，混音长度以它为准
	speechBuf := beep.NewBuffer(speechFormat)
	speechBuf.Append(speech)
	speechLen := speechBuf.Len()

	// 背景乐重采样到语音采样率，再截断到语音长度；本就更短时按原样使用
	var musicStream beep.Streamer = music
	if musicFormat.SampleRate != speechFormat.SampleRate {
		musicStream = beep.Resample(4, musicFormat.SampleRate, speechFormat.SampleRate, musicStream)
	}
	musicBuf := beep.NewBuffer(speechFormat)
	musicBuf.Append(beep.Take(speechLen, musicStream))
	musicLen := musicBuf.Len()

	sr := speechFormat.SampleRate
	processed := newFade(
		musicBuf.Streamer(0, musicLen),
		sr.N(time.Duration(opts.FadeInMs)*time.Millisecond),
		sr.N(time.Duration(opts.FadeOutMs)*time.Millisecond),
		musicLen,
	)

	var leveled beep.Streamer = processed
	if opts.VolumeReductionDB != 0 {
		// 每 6.02 dB 对应一倍增益
		leveled = &effects.Volume{
			Streamer: processed,
			Base:     2,
			Volume:   -opts.VolumeReductionDB / 6.02,
		}
	}

	mixed := beep.Mix(speechBuf.Streamer(0, speechLen), leveled)

	out, err := os.Create(wavOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	outFormat := beep.Format{
		SampleRate:  speechFormat.SampleRate,
		NumChannels: speechFormat.NumChannels,
		Precision:   2,
	}
	if err := wav.Encode(out, mixed, outFormat); err != nil {
		out.Close()
		os.Remove(wavOut)
		return fmt.Errorf("failed to write wav: %w", err)
	}
	return out.Close()
}

// decode 按扩展名解码音频文件
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
}
