// internal/workers/discovery/explain-university-fit/config.go
package explainuniversityfit

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
