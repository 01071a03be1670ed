package engagement

import (
	"fmt"
	"time"
)

// Config holds the configuration for the engagement simulation
type Config struct {
	NumMissiles           int
	Duration              time.Duration
	UpdateInterval        time.Duration
	EnableCountermeasures bool
	CombinedPenalty       float64
	AircraftRCS           float64
	RadarMaxRange         float64
	RadarMaxSignal        float64
	RidgeOcclusion        bool
}

// defaultConfig returns the baseline engagement setup: two inbound missiles
// against a single fighter with a standard decoy loadout.
func defaultConfig() *Config {
	return &Config{
		NumMissiles:           2,
		Duration:              90 * time.Second,
		UpdateInterval:        50 * time.Millisecond,
		EnableCountermeasures: true,
		CombinedPenalty:       0.25,
		AircraftRCS:           1.5,
		RadarMaxRange:         5000,
		RadarMaxSignal:        100,
		RidgeOcclusion:        false,
	}
}

// ValidateAndParse validates and parses the raw parameters into a Config
func ValidateAndParse(params map[string]interface{}) (*Config, error) {
	config := defaultConfig()

	if v, ok := params["num_missiles"]; ok {
		switch val := v.(type) {
		case int:
			config.NumMissiles = val
		case float64:
			config.NumMissiles = int(val)
		default:
			return nil, fmt.Errorf("num_missiles must be an integer")
		}
	}
	if config.NumMissiles < 1 || config.NumMissiles > 8 {
		return nil, fmt.Errorf("num_missiles must be between 1 and 8")
	}

	if v, ok := params["duration"]; ok {
		switch val := v.(type) {
		case time.Duration:
			config.Duration = val
		case string:
			duration, err := time.ParseDuration(val)
			if err != nil {
				return nil, fmt.Errorf("invalid duration format: %w", err)
			}
			config.Duration = duration
		default:
			return nil, fmt.Errorf("duration must be a duration string")
		}
	}
	if config.Duration < 10*time.Second || config.Duration > 10*time.Minute {
		return nil, fmt.Errorf("duration must be between 10s and 10m")
	}

	if v, ok := params["update_interval"]; ok {
		switch val := v.(type) {
		case time.Duration:
			config.UpdateInterval = val
		case string:
			interval, err := time.ParseDuration(val)
			if err != nil {
				return nil, fmt.Errorf("invalid update_interval format: %w", err)
			}
			config.UpdateInterval = interval
		default:
			return nil, fmt.Errorf("update_interval must be a duration string")
		}
	}
	if config.UpdateInterval < 10*time.Millisecond || config.UpdateInterval > time.Second {
		return nil, fmt.Errorf("update_interval must be between 10ms and 1s")
	}

	if v, ok := params["enable_countermeasures"]; ok {
		enabled, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("enable_countermeasures must be a boolean")
		}
		config.EnableCountermeasures = enabled
	}

	if v, ok := params["combined_penalty"]; ok {
		penalty, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("combined_penalty must be a number")
		}
		config.CombinedPenalty = penalty
	}
	if config.CombinedPenalty < 0 || config.CombinedPenalty > 1 {
		return nil, fmt.Errorf("combined_penalty must be between 0.0 and 1.0")
	}

	if v, ok := params["aircraft_rcs"]; ok {
		rcs, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("aircraft_rcs must be a number")
		}
		config.AircraftRCS = rcs
	}
	if config.AircraftRCS <= 0 {
		return nil, fmt.Errorf("aircraft_rcs must be positive")
	}

	if v, ok := params["radar_max_range"]; ok {
		r, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("radar_max_range must be a number")
		}
		config.RadarMaxRange = r
	}
	if config.RadarMaxRange <= 0 {
		return nil, fmt.Errorf("radar_max_range must be positive")
	}

	if v, ok := params["radar_max_signal"]; ok {
		s, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("radar_max_signal must be a number")
		}
		config.RadarMaxSignal = s
	}
	if config.RadarMaxSignal <= 0 {
		return nil, fmt.Errorf("radar_max_signal must be positive")
	}

	if v, ok := params["ridge_occlusion"]; ok {
		ridge, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("ridge_occlusion must be a boolean")
		}
		config.RidgeOcclusion = ridge
	}

	return config, nil
}

func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
