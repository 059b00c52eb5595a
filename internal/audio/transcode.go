package audio

import (
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// TranscodeToMP3 用 ffmpeg 把任意音频文件转码为 192k MP3
func TranscodeToMP3(src, dst string) error {
	return ffmpeg.Input(src).
		Output(dst, ffmpeg.KwArgs{
			"c:a": "libmp3lame",
			"b:a": "192k",
			"vn":  "",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
}
