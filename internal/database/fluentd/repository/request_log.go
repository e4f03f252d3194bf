package repository

import (
	"context"
	"encoding/json"
	"time"

	"blogging/config"
	"blogging/internal/core"
	"blogging/internal/database/client"
	"blogging/internal/database/fluentd/model"
	mongoModel "blogging/internal/database/mongodb/model"
)

const fluentdTimeLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 把稽核紀錄鏡像一份到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	projectName   string
	version       string
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, projectName: config.App.Name, version: version}
}

func (repository *LogRepository) LogRequest(ctx context.Context, entry *mongoModel.LogEntry) error {
	record := model.RequestLog{
		Method:      entry.RequestInfo.Method,
		URL:         entry.RequestInfo.URL,
		Status:      entry.ResponseInfo.Status,
		ElapsedMs:   entry.ResponseInfo.Time,
		ProjectName: repository.projectName,
		Version:     repository.version,
		RequestTS:   entry.RequestInfo.Timestamp.UTC().Format(fluentdTimeLayout),
		LoggedAt:    time.Now().UTC().Format(fluentdTimeLayout),
	}
	if !entry.ID.IsZero() {
		record.LogID = entry.ID.Hex()
	}
	if entry.RequestInfo.Body != nil {
		if b, err := json.Marshal(entry.RequestInfo.Body); err == nil {
			record.RequestBody = string(b)
		}
	}

	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(core.FluentdRequest), fluentdMessage)
}
