package handlers

import (
	"VoxStudio/pkg/config"
	"VoxStudio/pkg/metrics"
	"VoxStudio/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Register(engine *gin.Engine) {
	engine.GET("/metrics", metrics.Handler())

	r := engine.Group(config.GlobalConfig.APIPrefix)

	h.registerSystemRoutes(r)

	h.registerVoiceRoutes(r)
	h.registerGenerateRoutes(r)
	h.registerMergeRoutes(r)
	h.registerFileRoutes(r)
}

// Voice Registration Module
func (h *Handlers) registerVoiceRoutes(r *gin.RouterGroup) {
	voice := r.Group("voice")
	{
		// 已注册用户列表
		voice.GET("/users", h.handleListUsers)

		// 上传样本注册
		voice.POST("/register", h.handleRegisterUpload)

		// 浏览器录音：建立会话并经 WebSocket 推帧
		voice.GET("/record/ws", h.handleRecordStream)

		// 保存录音并注册
		voice.POST("/record/save", h.handleRecordSave)
	}
}

// Audio Generation Module
func (h *Handlers) registerGenerateRoutes(r *gin.RouterGroup) {
	limited := middleware.RateLimiter(config.GlobalConfig.SynthesisRate)

	generate := r.Group("generate")
	{
		generate.GET("/template", h.handleTextTemplate)

		generate.POST("", limited, h.handleGenerate)
	}
}

// Audio Merge Module
func (h *Handlers) registerMergeRoutes(r *gin.RouterGroup) {
	merge := r.Group("merge")
	{
		merge.POST("/music/upload", h.handleMusicUpload)

		merge.POST("/music/youtube", h.handleMusicFromYouTube)

		merge.POST("", h.handleMerge)
	}
}

// File Manager Module
func (h *Handlers) registerFileRoutes(r *gin.RouterGroup) {
	filesGroup := r.Group("files")
	{
		filesGroup.GET("", h.handleListFiles)

		filesGroup.GET("/download", h.handleDownloadFile)

		filesGroup.GET("/play", h.handlePlayFile)

		filesGroup.DELETE("", h.handleDeleteFile)
	}
}

func (h *Handlers) registerSystemRoutes(r *gin.RouterGroup) {
	system := r.Group("system")
	{
		system.GET("/health", h.HealthCheck)

		system.GET("/status", h.SystemStatus)
	}

	r.GET("/jobs", h.handleListJobs)
}
