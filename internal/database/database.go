package database

import (
	client "blogging/internal/database/client"
	fluentdRepo "blogging/internal/database/fluentd/repository"
	mongoRepo "blogging/internal/database/mongodb/repository"
	redisRepo "blogging/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
