package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultSpeechifyBaseURL = "https://api.sws.speechify.com"

// SpeechifyProvider implements the VoiceProvider interface for the Speechify cloning API
type SpeechifyProvider struct {
	apiKey    string
	baseURL   string
	outputDir string
	client    *http.Client
	logger    *logrus.Logger
}

// NewSpeechifyProvider creates a new Speechify provider
func NewSpeechifyProvider(cfg Config) *SpeechifyProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultSpeechifyBaseURL
	}
	return &SpeechifyProvider{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		outputDir: cfg.OutputDir,
		client:    &http.Client{Timeout: 120 * time.Second},
		logger:    logrus.New(),
	}
}

// CreateVoice uploads a voice sample and returns the issued voice id
func (p *SpeechifyProvider) CreateVoice(ctx context.Context, userID, audioPath string) (string, error) {
	sample, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open voice sample: %w", err)
	}
	defer sample.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("name", userID); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if err := writer.WriteField("consent", `{"fullName":"`+userID+`","granted":true}`); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	part, err := writer.CreateFormFile("sample", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, sample); err != nil {
		return "", fmt.Errorf("failed to read voice sample: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/voices", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speechify voice creation failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("speechify returned no voice id")
	}

	p.logger.Infof("created voice %s for user %s", parsed.ID, userID)
	return parsed.ID, nil
}

// Synthesize requests speech audio for one text entry and writes it under the user's output directory
func (p *SpeechifyProvider) Synthesize(ctx context.Context, r SynthesisRequest) (string, error) {
	requestBody := map[string]interface{}{
		"input":        buildSSML(r.Text, r.Emotion, r.RatePercent),
		"voice_id":     r.VoiceID,
		"audio_format": "mp3",
	}
	body, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speechify synthesis failed: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		AudioData string `json:"audio_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(parsed.AudioData)
	if err != nil {
		return "", fmt.Errorf("failed to decode audio payload: %w", err)
	}

	outDir := filepath.Join(p.outputDir, r.UserLabel)
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(outDir, r.OutputKey+".mp3")
	if err := os.WriteFile(outPath, audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	p.logger.Infof("synthesized %q with voice %s -> %s", r.OutputKey, r.VoiceID, outPath)
	return outPath, nil
}

// buildSSML 拼装带情绪和语速的 SSML，文本先做 XML 转义
func buildSSML(text, emotion string, ratePercent int) string {
	inner := html.EscapeString(text)
	if ratePercent != 0 {
		inner = fmt.Sprintf(`<prosody rate="%+d%%">%s</prosody>`, ratePercent, inner)
	}
	if emotion != "" {
		inner = fmt.Sprintf(`<speechify:style emotion="%s">%s</speechify:style>`, emotion, inner)
	}
	return "<speak>" + inner + "</speak>"
}
