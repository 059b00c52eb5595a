package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(8000)

// constStreamer 输出定值样本的有限流
type constStreamer struct {
	remaining int
	value     float64
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.remaining <= 0 {
		return 0, false
	}
	n := len(samples)
	if n > c.remaining {
		n = c.remaining
	}
	for i := 0; i < n; i++ {
		samples[i][0] = c.value
		samples[i][1] = c.value
	}
	c.remaining -= n
	return n, true
}

func (c *constStreamer) Err() error { return nil }

func writeWAV(t *testing.T, path string, seconds int, value float64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
	s := &constStreamer{remaining: int(testRate) * seconds, value: value}
	require.NoError(t, wav.Encode(f, s, format))
}

func drainWAV(t *testing.T, path string) []float64 {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	streamer, _, err := wav.Decode(f)
	require.NoError(t, err)
	defer streamer.Close()

	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			break
		}
	}
	return out
}

func TestMixdownTruncatesLongMusic(t *testing.T) {
	dir := t.TempDir()
	speech := filepath.Join(dir, "speech.wav")
	music := filepath.Join(dir, "music.wav")
	out := filepath.Join(dir, "out.wav")

	writeWAV(t, speech, 3, 0) // 3秒静音语音
	writeWAV(t, music, 10, 0.5)

	require.NoError(t, MixdownWAV(speech, music, out, MergeOptions{}))

	samples := drainWAV(t, out)
	// 输出时长等于语音时长
	assert.Equal(t, int(testRate)*3, len(samples))
	// 无淡化无衰减时电平不变
	assert.InDelta(t, 0.5, samples[100], 0.01)
	assert.InDelta(t, 0.5, samples[len(samples)-100], 0.01)
}

func TestMixdownShortMusicNotLooped(t *testing.T) {
	dir := t.TempDir()
	speech := filepath.Join(dir, "speech.wav")
	music := filepath.Join(dir, "music.wav")
	out := filepath.Join(dir, "out.wav")

	writeWAV(t, speech, 10, 0)
	writeWAV(t, music, 3, 0.5)

	require.NoError(t, MixdownWAV(speech, music, out, MergeOptions{}))

	samples := drainWAV(t, out)
	assert.Equal(t, int(testRate)*10, len(samples))
	// 前3秒有音乐
	assert.InDelta(t, 0.5, samples[int(testRate)], 0.01)
	// 之后保持静音，不循环补齐
	assert.InDelta(t, 0, samples[int(testRate)*5], 0.01)
	assert.InDelta(t, 0, samples[len(samples)-1], 0.01)
}

func TestMixdownVolumeReduction(t *testing.T) {
	dir := t.TempDir()
	speech := filepath.Join(dir, "speech.wav")
	music := filepath.Join(dir, "music.wav")
	out := filepath.Join(dir, "out.wav")

	writeWAV(t, speech, 2, 0)
	writeWAV(t, music, 2, 0.5)

	// 约 -6dB 减半
	require.NoError(t, MixdownWAV(speech, music, out, MergeOptions{VolumeReductionDB: 6.02}))

	samples := drainWAV(t, out)
	assert.InDelta(t, 0.25, samples[100], 0.02)
}

func TestMixdownOverlaysSpeechAndMusic(t *testing.T) {
	dir := t.TempDir()
	speech := filepath.Join(dir, "speech.wav")
	music := filepath.Join(dir, "music.wav")
	out := filepath.Join(dir, "out.wav")

	writeWAV(t, speech, 2, 0.3)
	writeWAV(t, music, 2, 0.2)

	require.NoError(t, MixdownWAV(speech, music, out, MergeOptions{}))

	// 叠加是加性混合而非拼接
	samples := drainWAV(t, out)
	assert.Equal(t, int(testRate)*2, len(samples))
	assert.InDelta(t, 0.5, samples[100], 0.02)
}

func TestFadeStreamer(t *testing.T) {
	const length = 100
	s := newFade(&constStreamer{remaining: length, value: 1}, 10, 10, length)

	buf := make([][2]float64, length)
	n, _ := s.Stream(buf)
	require.Equal(t, length, n)

	assert.Equal(t, 0.0, buf[0][0])
	assert.InDelta(t, 0.5, buf[5][0], 1e-9)
	assert.Equal(t, 1.0, buf[50][0])
	assert.InDelta(t, 0.5, buf[95][0], 1e-9)
}

func TestFadeZeroIsPassthrough(t *testing.T) {
	inner := &constStreamer{remaining: 10, value: 1}
	s := newFade(inner, 0, 0, 10)
	// 无淡化时直接返回原流
	assert.Equal(t, beep.Streamer(inner), s)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.flac")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, _, err := decode(path)
	assert.Error(t, err)
}
