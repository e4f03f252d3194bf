package model

// RequestLog 稽核紀錄在 Fluentd 的扁平格式
type RequestLog struct {
	LogID       string `json:"log_id,omitempty"`
	Method      string `json:"method"`
	URL         string `json:"url"`
	Status      int    `json:"status"`
	ElapsedMs   int64  `json:"elapsed_ms"`
	RequestBody string `json:"request_body,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	Version     string `json:"version,omitempty"`
	RequestTS   string `json:"request_ts"`
	LoggedAt    string `json:"logged_at"`
}
