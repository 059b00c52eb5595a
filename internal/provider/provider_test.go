package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVoiceProvider(t *testing.T) {
	p, err := NewVoiceProvider(Config{Engine: EngineSpeechify})
	require.NoError(t, err)
	assert.IsType(t, &SpeechifyProvider{}, p)

	p, err = NewVoiceProvider(Config{Engine: EngineOpenAI})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p)

	_, err = NewVoiceProvider(Config{Engine: "nope"})
	assert.Error(t, err)
}

func TestValidEmotion(t *testing.T) {
	assert.True(t, ValidEmotion(""))
	assert.True(t, ValidEmotion("cheerful"))
	assert.False(t, ValidEmotion("grumpy"))
}

func TestBuildSSML(t *testing.T) {
	assert.Equal(t, "<speak>hi</speak>", buildSSML("hi", "", 0))
	assert.Equal(t, `<speak><prosody rate="+10%">hi</prosody></speak>`, buildSSML("hi", "", 10))
	assert.Equal(t, `<speak><speechify:style emotion="sad"><prosody rate="-5%">hi</prosody></speechify:style></speak>`,
		buildSSML("hi", "sad", -5))
}

func TestBuildSSMLEscapesText(t *testing.T) {
	assert.Equal(t, "<speak>Tom &amp; Jerry</speak>", buildSSML("Tom & Jerry", "", 0))
	assert.Equal(t, `<speak><prosody rate="+10%">a &lt;b&gt; c</prosody></speak>`,
		buildSSML("a <b> c", "", 10))
}

func TestSpeechifyCreateVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/voices", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		assert.Equal(t, "jane_001", r.FormValue("name"))
		_, _, err := r.FormFile("sample")
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]string{"id": "voice-xyz"})
	}))
	defer srv.Close()

	dir := t.TempDir()
	sample := filepath.Join(dir, "jane_001.mp3")
	require.NoError(t, os.WriteFile(sample, []byte("fake-mp3"), 0o644))

	p := NewSpeechifyProvider(Config{APIKey: "k", BaseURL: srv.URL, OutputDir: dir})
	voiceID, err := p.CreateVoice(context.Background(), "jane_001", sample)
	require.NoError(t, err)
	assert.Equal(t, "voice-xyz", voiceID)
}

func TestSpeechifyCreateVoiceNoID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	dir := t.TempDir()
	sample := filepath.Join(dir, "s.mp3")
	require.NoError(t, os.WriteFile(sample, []byte("x"), 0o644))

	p := NewSpeechifyProvider(Config{BaseURL: srv.URL, OutputDir: dir})
	_, err := p.CreateVoice(context.Background(), "u", sample)
	assert.Error(t, err)
}

func TestSpeechifySynthesize(t *testing.T) {
	audio := []byte("mp3-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/speech", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "voice-xyz", body["voice_id"])
		assert.Contains(t, body["input"], "emotion=\"cheerful\"")
		json.NewEncoder(w).Encode(map[string]string{
			"audio_data": base64.StdEncoding.EncodeToString(audio),
		})
	}))
	defer srv.Close()

	outDir := t.TempDir()
	p := NewSpeechifyProvider(Config{BaseURL: srv.URL, OutputDir: outDir})

	path, err := p.Synthesize(context.Background(), SynthesisRequest{
		Text:        "hello",
		VoiceID:     "voice-xyz",
		UserLabel:   "jane_001",
		OutputKey:   "greeting1",
		Emotion:     "cheerful",
		RatePercent: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "jane_001", "greeting1.mp3"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, audio, written)
}
