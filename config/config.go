package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB   MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Token     Token           `mapstructure:"TOKEN" json:"token" yaml:"token"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	RateLimit RateLimit       `mapstructure:"RATE_LIMIT" json:"rate_limit" yaml:"rate_limit"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
}

// LegacyEnvAliases 舊版部署使用的環境變數 → 對應設定 key
var LegacyEnvAliases = map[string]string{
	"PORT":       "APP__PORT",
	"MONGO_URI":  "MONGODB__URI",
	"JWT_SECRET": "TOKEN__SECRET",
}
