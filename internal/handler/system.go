package handlers

import (
	"net/http"

	"VoxStudio/internal/models"
	"VoxStudio/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthCheck 健康检查接口
func (h *Handlers) HealthCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		response.FailWithStatus(c, http.StatusServiceUnavailable, "database connection failed")
		return
	}
	if err := sqlDB.Ping(); err != nil {
		response.FailWithStatus(c, http.StatusServiceUnavailable, "database ping failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// SystemStatus 返回主机资源占用
func (h *Handlers) SystemStatus(c *gin.Context) {
	status := gin.H{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpuPercent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memPercent"] = vm.UsedPercent
	}
	if du, err := disk.Usage("."); err == nil {
		status["diskPercent"] = du.UsedPercent
	}

	response.Success(c, "system status", status)
}

// 最近的任务记录
func (h *Handlers) handleListJobs(c *gin.Context) {
	var jobs []models.VoiceJob
	if err := h.db.Order("id desc").Limit(100).Find(&jobs).Error; err != nil {
		response.Fail(c, "can not find job records", nil)
		return
	}
	response.Success(c, "get jobs", jobs)
}
