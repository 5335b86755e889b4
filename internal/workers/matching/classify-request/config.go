// internal/workers/matching/classify-request/config.go
package classifyrequest

import (
	"time"

	"marketplace-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(worker config.WorkerConfig) *Config {
	cfg := &Config{
		Timeout: 10 * time.Second,
	}
	if worker.Timeout > 0 {
		cfg.Timeout = config.GetDuration(worker.Timeout)
	}
	return cfg
}
