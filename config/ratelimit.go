package config

// RateLimit 只作用於 POST /create，需要 Redis
type RateLimit struct {
	Enabled         bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	CreatePerMinute int  `mapstructure:"CREATE_PER_MINUTE" json:"create_per_minute" yaml:"create_per_minute"`
}
