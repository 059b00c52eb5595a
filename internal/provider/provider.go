package provider

import (
	"context"
	"errors"
)

// SynthesisRequest 一次语音合成请求
type SynthesisRequest struct {
	Text        string
	VoiceID     string
	UserLabel   string // 输出子目录（用户目录名）
	OutputKey   string // 输出文件名主干
	Emotion     string // 情绪标签，空串表示不指定
	RatePercent int    // 语速调整，[-50, 50]
}

// VoiceProvider represents a generic interface for voice cloning and synthesis backends
type VoiceProvider interface {
	// CreateVoice registers a voice sample and returns the provider-issued voice id
	CreateVoice(ctx context.Context, userID, audioPath string) (string, error)

	// Synthesize converts text to speech with a cloned voice and returns the output file path
	Synthesize(ctx context.Context, req SynthesisRequest) (string, error)
}

type EngineType string

const (
	EngineSpeechify EngineType = "speechify"
	EngineOpenAI    EngineType = "openai"
)

// Config 服务商配置
type Config struct {
	Engine    EngineType
	APIKey    string
	BaseURL   string
	OutputDir string // 合成语音根目录
}

// NewVoiceProvider returns a VoiceProvider based on the engine type.
func NewVoiceProvider(cfg Config) (VoiceProvider, error) {
	switch cfg.Engine {
	case EngineSpeechify, "":
		return NewSpeechifyProvider(cfg), nil
	case EngineOpenAI:
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, errors.New("unsupported voice provider engine")
	}
}

// Emotions 服务商定义的情绪枚举
var Emotions = []string{
	"angry", "cheerful", "sad", "calm", "excited",
	"hopeful", "shouting", "terrified", "unfriendly", "whispering",
}

// ValidEmotion 校验情绪标签（空串合法）
func ValidEmotion(emotion string) bool {
	if emotion == "" {
		return true
	}
	for _, e := range Emotions {
		if e == emotion {
			return true
		}
	}
	return false
}
