package music

import (
	"testing"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
)

func TestBestAudioFormat(t *testing.T) {
	video := &youtube.Video{
		Formats: []youtube.Format{
			{MimeType: `video/mp4; codecs="avc1"`, Bitrate: 500000},
			{MimeType: `audio/webm; codecs="opus"`, Bitrate: 128000},
			{MimeType: `audio/mp4; codecs="mp4a"`, Bitrate: 160000},
		},
	}

	best := bestAudioFormat(video)
	assert.NotNil(t, best)
	assert.Equal(t, 160000, best.Bitrate)
}

func TestBestAudioFormatMissing(t *testing.T) {
	video := &youtube.Video{
		Formats: []youtube.Format{
			{MimeType: `video/mp4; codecs="avc1"`, Bitrate: 500000},
		},
	}
	assert.Nil(t, bestAudioFormat(video))
}

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeTitle("a/b\\c"))
	assert.Equal(t, "background_music", sanitizeTitle("  "))
	assert.Equal(t, "My Song", sanitizeTitle("My Song"))
}
