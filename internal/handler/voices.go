package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"VoxStudio/internal/audio"
	"VoxStudio/internal/models"
	"VoxStudio/internal/recorder"
	"VoxStudio/pkg/logger"
	"VoxStudio/pkg/metrics"
	"VoxStudio/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 服务只面向本地交互界面
		return true
	},
}

// 获取所有已注册用户（user_id -> voice_id）
func (h *Handlers) handleListUsers(c *gin.Context) {
	users := h.reg.LoadExistingUsers()
	response.Success(c, "get registered users", users)
}

// 上传语音样本并注册
func (h *Handlers) handleRegisterUpload(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	if name == "" {
		response.Fail(c, "name is required", nil)
		return
	}

	file, err := c.FormFile("audio")
	if err != nil {
		response.Fail(c, "audio file is required", nil)
		return
	}

	userID := h.reg.ClaimUserID(name)
	audioPath := h.reg.RecordPath(userID)
	if err := c.SaveUploadedFile(file, audioPath); err != nil {
		logger.Error("failed to save voice sample", zap.String("user", userID), zap.Error(err))
		response.Fail(c, "failed to save voice sample", nil)
		return
	}

	h.finishRegistration(c, userID, name, email, audioPath, "upload")
}

// handleRecordStream 建立录音会话，经 WebSocket 接收 PCM 帧
//
// 首条下行消息携带 sessionId，之后客户端以二进制帧推送
// 48kHz 单声道 16bit 小端 PCM，连接关闭后帧保留在会话缓冲中待保存。
func (h *Handlers) handleRecordStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	session := h.sessions.Create()
	if err := conn.WriteJSON(gin.H{"sessionId": session.ID}); err != nil {
		h.sessions.Remove(session.ID)
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("recording stream error", zap.String("session", session.ID), zap.Error(err))
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		if err := session.Push(recorder.DecodeFrame(data)); err != nil {
			if errors.Is(err, recorder.ErrSessionClosed) {
				return
			}
			logger.Warn("recording frame dropped", zap.String("session", session.ID), zap.Error(err))
		}
	}
}

// 保存录音并注册
func (h *Handlers) handleRecordSave(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	sessionID := c.PostForm("sessionId")
	if name == "" {
		response.Fail(c, "name is required", nil)
		return
	}

	session, ok := h.sessions.Get(sessionID)
	if !ok {
		response.Fail(c, "unknown recording session", nil)
		return
	}
	samples := session.Drain()
	h.sessions.Remove(sessionID)
	if len(samples) == 0 {
		response.Fail(c, "no audio recorded", nil)
		return
	}

	userID := h.reg.ClaimUserID(name)
	audioPath := h.reg.RecordPath(userID)
	wavPath := strings.TrimSuffix(audioPath, ".mp3") + ".wav"

	if err := recorder.WriteWAV(wavPath, samples); err != nil {
		logger.Error("failed to write recording", zap.String("user", userID), zap.Error(err))
		response.Fail(c, "failed to save recording", nil)
		return
	}
	if err := audio.TranscodeToMP3(wavPath, audioPath); err != nil {
		os.Remove(wavPath)
		logger.Error("failed to encode recording", zap.String("user", userID), zap.Error(err))
		response.Fail(c, "failed to encode recording", nil)
		return
	}
	os.Remove(wavPath)

	h.finishRegistration(c, userID, name, email, audioPath, "recorded")
}

// finishRegistration 调服务商换取 voice_id 并写注册表
// 服务商失败时不写注册表，原始样本保留在磁盘上
func (h *Handlers) finishRegistration(c *gin.Context, userID, name, email, audioPath, source string) {
	voiceID, err := h.provider.CreateVoice(c.Request.Context(), userID, audioPath)
	metrics.RecordProviderCall("create_voice", err == nil)
	if err != nil {
		logger.Error("voice creation failed", zap.String("user", userID), zap.Error(err))
		h.recordJob(models.JobKindRegister, userID, "", audioPath, err)
		response.Fail(c, "failed to get voice id", nil)
		return
	}

	if err := h.reg.SaveUserData(userID, voiceID, name, email); err != nil {
		logger.Error("failed to save user data", zap.String("user", userID), zap.Error(err))
		h.recordJob(models.JobKindRegister, userID, "", audioPath, err)
		response.Fail(c, "failed to save user data", nil)
		return
	}

	info, _ := os.Stat(audioPath)
	recording := models.Recording{
		UserID:   userID,
		VoiceID:  voiceID,
		FilePath: audioPath,
		Format:   strings.TrimPrefix(filepath.Ext(audioPath), "."),
		Source:   source,
	}
	if info != nil {
		recording.SizeBytes = info.Size()
	}
	if err := h.db.Create(&recording).Error; err != nil {
		logger.Warn("failed to record sample metadata", zap.Error(err))
	}

	h.recordJob(models.JobKindRegister, userID, "", audioPath, nil)
	response.Success(c, "voice registered", gin.H{
		"userId":  userID,
		"voiceId": voiceID,
	})
}
