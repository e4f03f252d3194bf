package dto

import "blogging/internal/database/mongodb/model"

// LogEntryResponseDto 只用於 swagger 文件
type LogEntryResponseDto = model.LogEntry
