package handlers

import (
	"io"
	"strconv"
	"strings"

	"VoxStudio/internal/models"
	"VoxStudio/internal/provider"
	"VoxStudio/internal/registry"
	"VoxStudio/pkg/logger"
	"VoxStudio/pkg/metrics"
	"VoxStudio/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 下载文本表模板
func (h *Handlers) handleTextTemplate(c *gin.Context) {
	buf, err := registry.TextTemplate()
	if err != nil {
		response.Fail(c, "failed to build template", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="Text_Template.xlsx"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// 为选中的用户批量合成语音
//
// 单条失败跳过继续，没有跨条目的事务语义。
func (h *Handlers) handleGenerate(c *gin.Context) {
	userID := c.PostForm("userId")
	emotion := c.PostForm("emotion")
	customText := c.PostForm("customText")
	rate, err := strconv.Atoi(strings.TrimSpace(c.DefaultPostForm("rate", "0")))
	if err != nil || rate < -50 || rate > 50 {
		response.Fail(c, "rate must be an integer in [-50, 50]", nil)
		return
	}
	if !provider.ValidEmotion(emotion) {
		response.Fail(c, "unknown emotion", nil)
		return
	}

	users := h.reg.LoadExistingUsers()
	voiceID, ok := users[userID]
	if !ok {
		response.Fail(c, "unknown user", nil)
		return
	}

	var table io.Reader
	if file, err := c.FormFile("texts"); err == nil {
		f, err := file.Open()
		if err != nil {
			response.Fail(c, "failed to read text table", nil)
			return
		}
		defer f.Close()
		table = f
	}

	texts := registry.LoadTextInputs(table, customText)
	if len(texts) == 0 {
		response.Fail(c, "no text to synthesize", nil)
		return
	}

	generated := []string{}
	skipped := []string{}
	for key, text := range texts {
		outputPath, err := h.provider.Synthesize(c.Request.Context(), provider.SynthesisRequest{
			Text:        text,
			VoiceID:     voiceID,
			UserLabel:   userID,
			OutputKey:   key,
			Emotion:     emotion,
			RatePercent: rate,
		})
		metrics.RecordProviderCall("synthesize", err == nil)
		h.recordJob(models.JobKindSynthesize, userID, key, outputPath, err)
		if err != nil {
			logger.Warn("synthesis failed, entry skipped",
				zap.String("user", userID), zap.String("key", key), zap.Error(err))
			skipped = append(skipped, key)
			continue
		}
		generated = append(generated, outputPath)
	}

	response.Success(c, "audio generated", gin.H{
		"generated": generated,
		"skipped":   skipped,
	})
}
