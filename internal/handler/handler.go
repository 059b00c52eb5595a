package handlers

import (
	"VoxStudio/internal/files"
	"VoxStudio/internal/models"
	"VoxStudio/internal/provider"
	"VoxStudio/internal/recorder"
	"VoxStudio/internal/registry"
	"VoxStudio/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handlers struct {
	db       *gorm.DB
	reg      *registry.Registry
	provider provider.VoiceProvider
	fileMgr  *files.Manager
	sessions *recorder.Manager
}

func NewHandlers(db *gorm.DB, reg *registry.Registry, p provider.VoiceProvider, fm *files.Manager) *Handlers {
	return &Handlers{
		db:       db,
		reg:      reg,
		provider: p,
		fileMgr:  fm,
		sessions: recorder.NewManager(),
	}
}

// recordJob 落一条任务审计记录，失败只记日志不影响主流程
func (h *Handlers) recordJob(kind, userID, inputKey, outputPath string, jobErr error) {
	job := models.VoiceJob{
		JobID:      uuid.NewString(),
		Kind:       kind,
		UserID:     userID,
		InputKey:   inputKey,
		OutputPath: outputPath,
		Status:     models.JobStatusSucceeded,
	}
	if jobErr != nil {
		job.Status = models.JobStatusFailed
		job.ErrorMessage = jobErr.Error()
	}
	if err := h.db.Create(&job).Error; err != nil {
		logger.Warn("failed to record job", zap.String("kind", kind), zap.Error(err))
	}
}
