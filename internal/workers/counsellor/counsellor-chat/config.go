// internal/workers/counsellor/counsellor-chat/config.go
package counsellorchat

import "time"

type Config struct {
	Timeout time.Duration
	// ApplyActions applies the model's function calls to the profile store
	// before completing the job.
	ApplyActions bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      60 * time.Second,
		ApplyActions: true,
	}
}
