package config

import "time"

type Token struct {
	// HMAC 簽章密鑰
	Secret string `mapstructure:"SECRET" json:"-" yaml:"secret"`
	// token 有效期限，例如 "1h"
	TTL time.Duration `mapstructure:"TTL" json:"ttl" yaml:"ttl"`
}
