package handler

import (
	"net/http"
	"runtime"
	"time"

	"blogging/config"

	"github.com/gin-gonic/gin"
)

const HeaderAppVersion = "X-App-Version"

type RuntimeInfo struct {
	Env       string        `json:"env"`
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	GoVersion string        `json:"go_version"`
	StartAt   time.Time     `json:"start_at"`
	Uptime    time.Duration `json:"uptime"`
}

type VersionHandler struct {
	conf    *config.Configuration
	startAt time.Time // 程式啟動時間（非環境變數）
}

func NewVersionHandler(conf *config.Configuration) *VersionHandler {
	return &VersionHandler{conf: conf, startAt: time.Now()}
}

// Info 版本/環境快照（來源 = conf.App）
func (h *VersionHandler) Info() RuntimeInfo {
	return RuntimeInfo{
		Env:       h.conf.App.Env,
		Name:      h.conf.App.Name,
		Version:   h.conf.App.Version,
		GoVersion: runtime.Version(),
		StartAt:   h.startAt,
		Uptime:    time.Since(h.startAt),
	}
}

// Version
// @Summary 版本資訊
// @Tags Health
// @Produce json
// @Success 200 {object} handler.RuntimeInfo
// @Router /version [get]
func (h *VersionHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, h.Info())
}

// Header 全域版本標頭（只用 conf.App.Version）
func (h *VersionHandler) Header() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := h.conf.App.Version; v != "" {
			c.Writer.Header().Set(HeaderAppVersion, v)
		}
		c.Next()
	}
}
