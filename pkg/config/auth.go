package config

import (
	"fmt"
	"time"
)

type AuthConfig struct {
	Secret   string        `koanf:"secret"`
	TokenTTL time.Duration `koanf:"tokenttl"`
}

func (c *AuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("auth secret is not configured")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("auth token TTL must be greater than zero")
	}
	return nil
}
