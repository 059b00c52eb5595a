package models

import "time"

// Recording 一份已登记的原始语音样本
type Recording struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:128;index"` // 注册表中的 user_id
	VoiceID   string `gorm:"size:128"`       // 服务商签发的 voice_id
	FilePath  string `gorm:"size:1024"`
	Format    string `gorm:"size:32"` // e.g. "mp3"
	SizeBytes int64
	Source    string `gorm:"size:32"` // upload / recorded
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VoiceJob 一次注册、合成或混音任务的记录（仅作审计，注册表以工作簿为准）
type VoiceJob struct {
	ID           uint   `gorm:"primaryKey"`
	JobID        string `gorm:"size:64;index"`
	Kind         string `gorm:"size:32"` // register / synthesize / merge / download
	UserID       string `gorm:"size:128"`
	InputKey     string `gorm:"size:255"`
	OutputPath   string `gorm:"size:1024"`
	Status       string `gorm:"size:32"` // succeeded / failed
	ErrorMessage string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	JobKindRegister   = "register"
	JobKindSynthesize = "synthesize"
	JobKindMerge      = "merge"
	JobKindDownload   = "download"

	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
)
