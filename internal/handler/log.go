package handler

import (
	"blogging/internal/pkg/response"
	"blogging/internal/service"
	"blogging/internal/telemetry"
	"blogging/utils/validate"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	trace      *telemetry.Trace
	logService *service.LogService
}

func NewLogHandler(trace *telemetry.Trace, logService *service.LogService) *LogHandler {
	return &LogHandler{trace: trace, logService: logService}
}

// List 分頁查詢請求紀錄
// @Summary 請求紀錄
// @Tags Log
// @Produce json
// @Param page query int false "頁碼，從 1 開始" default(1)
// @Param limit query int false "每頁筆數，最多 100" default(10)
// @Success 200 {array} dto.LogEntryResponseDto
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /logs [get]
func (h *LogHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	opts, err := validate.ParseListOptions(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	entries, err := h.logService.List(ctx, opts)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, entries)
}
