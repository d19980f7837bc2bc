package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rshade/greenroi/internal/engine/cache"
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section. Weight sums other than 1 are allowed;
// WeightWarning reports them.
func (c *Config) Validate() error {
	var errs []error
	sections := []struct {
		name  string
		value any
	}{
		{keyOutput, c.Output},
		{keyLogging, c.Logging},
		{keyFabrication, c.Fabrication},
		{keyProcessing, c.Processing},
	}
	for _, s := range sections {
		if err := validate.Struct(s.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	if err := c.Assumptions.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Cache.TTL != "" {
		if _, err := cache.ParseTTL(c.Cache.TTL); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if c.Fabrication.Source == SourceBoavizta && c.Fabrication.URL == "" {
		errs = append(errs, errors.New("fabrication: url is required for the boavizta source"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// weightTolerance is the accepted deviation of the weight sum from 1.
const weightTolerance = 1e-6

// WeightWarning returns a message when the vote weights do not sum to 1.
func (c *Config) WeightWarning() string {
	sum := c.Assumptions.Weights.Sum()
	if sum < 1-weightTolerance || sum > 1+weightTolerance {
		return fmt.Sprintf("vote weights sum to %.3f, expected 1.0", sum)
	}
	return ""
}
