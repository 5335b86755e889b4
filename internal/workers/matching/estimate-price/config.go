// internal/workers/matching/estimate-price/config.go
package estimateprice

import (
	"time"

	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/matching/pricing"
)

type Config struct {
	Timeout        time.Duration
	DefaultPreset  string
	TravelFeePerKm float64
}

func LoadConfig(worker config.WorkerConfig, matching config.MatchingConfig) *Config {
	cfg := &Config{
		Timeout:        10 * time.Second,
		DefaultPreset:  pricing.PresetMatching,
		TravelFeePerKm: matching.TravelFeePerKm,
	}
	if worker.Timeout > 0 {
		cfg.Timeout = config.GetDuration(worker.Timeout)
	}
	if cfg.TravelFeePerKm <= 0 {
		cfg.TravelFeePerKm = pricing.DefaultTravelFeePerKm
	}
	return cfg
}
