package provider

import (
	"context"
	"io"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIProvider implements the VoiceProvider interface for the OpenAI speech API
//
// OpenAI 不支持声音克隆：CreateVoice 返回固定的预置音色，
// 合成时 voice id 透传为预置音色名（alloy/echo/...）。
type OpenAIProvider struct {
	client    *openai.Client
	outputDir string
	logger    *logrus.Logger
}

// NewOpenAIProvider creates a new OpenAI speech provider
func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(config),
		outputDir: cfg.OutputDir,
		logger:    logrus.New(),
	}
}

// CreateVoice returns the default stock voice; the sample is accepted but not used for cloning
func (p *OpenAIProvider) CreateVoice(ctx context.Context, userID, audioPath string) (string, error) {
	p.logger.Warnf("openai engine does not clone voices, assigning stock voice to %s", userID)
	return string(openai.VoiceAlloy), nil
}

// Synthesize converts one text entry to speech with a stock voice
func (p *OpenAIProvider) Synthesize(ctx context.Context, r SynthesisRequest) (string, error) {
	speed := 1.0 + float64(r.RatePercent)/100.0

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          r.Text,
		Voice:          openai.SpeechVoice(r.VoiceID),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speed,
	})
	if err != nil {
		return "", err
	}
	defer resp.Close()

	outDir := filepath.Join(p.outputDir, r.UserLabel)
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, r.OutputKey+".mp3")

	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp); err != nil {
		return "", err
	}

	p.logger.Infof("synthesized %q with stock voice %s -> %s", r.OutputKey, r.VoiceID, outPath)
	return outPath, nil
}
