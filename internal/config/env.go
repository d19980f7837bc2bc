package config

import (
	"errors"
	"fmt"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome              = "GREENROI_HOME"
	EnvCarbonPrice       = "GREENROI_CARBON_PRICE"
	EnvElectricityPrice  = "GREENROI_ELECTRICITY_PRICE"
	EnvGridIntensity     = "GREENROI_GRID_INTENSITY"
	EnvPerfRatio         = "GREENROI_PERF_RATIO"
	EnvOutputFormat      = "GREENROI_OUTPUT_FORMAT"
	EnvLogLevel          = "GREENROI_LOG_LEVEL"
	EnvLogFormat         = "GREENROI_LOG_FORMAT"
	EnvLogFile           = "GREENROI_LOG_FILE"
	EnvFabricationSource = "GREENROI_FABRICATION_SOURCE"
	EnvFabricationURL    = "GREENROI_FABRICATION_URL"
	EnvCacheEnabled      = "GREENROI_CACHE_ENABLED"
	EnvCacheDir          = "GREENROI_CACHE_DIR"
	EnvCacheTTL          = "GREENROI_CACHE_TTL"
	EnvWorkers           = "GREENROI_WORKERS"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg with any GREENROI_* variable that is set and
// non-empty. Every unparseable value is reported.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = f
	}

	a := &cfg.Assumptions
	float(EnvCarbonPrice, &a.CarbonPricePerKg)
	float(EnvElectricityPrice, &a.ElectricityPricePerKWh)
	float(EnvGridIntensity, &a.GridIntensityKgPerKWh)
	float(EnvPerfRatio, &a.PerfRatio)

	str(EnvOutputFormat, &cfg.Output.DefaultFormat)
	str(EnvLogLevel, &cfg.Logging.Level)
	str(EnvLogFormat, &cfg.Logging.Format)
	str(EnvLogFile, &cfg.Logging.File)
	str(EnvFabricationSource, &cfg.Fabrication.Source)
	str(EnvFabricationURL, &cfg.Fabrication.URL)
	str(EnvCacheDir, &cfg.Cache.Directory)
	str(EnvCacheTTL, &cfg.Cache.TTL)

	if v, ok := lookup(EnvCacheEnabled); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCacheEnabled, err))
		} else {
			cfg.Cache.Enabled = b
		}
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvWorkers, err))
		} else {
			cfg.Processing.Workers = n
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %w", errors.Join(errs...))
	}
	return nil
}
