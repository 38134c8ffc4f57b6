// internal/workers/counsellor/counsellor-greeting/config.go
package counsellorgreeting

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
