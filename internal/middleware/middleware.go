package middleware

import "github.com/google/wire"

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewLogger,
	NewCors,
	NewRecovery,
	NewDecompress,
	NewResponse,
	NewToken,
	NewRateLimit,
)
