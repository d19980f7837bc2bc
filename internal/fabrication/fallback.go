package fabrication

import (
	"context"
	"errors"

	"github.com/rshade/greenroi/internal/greenops"
	"github.com/rshade/greenroi/internal/logging"
)

// FallbackSource answers from Primary and falls back to the built-in table
// on any error other than context cancellation.
type FallbackSource struct {
	Primary Source
}

// NewFallbackSource wraps primary.
func NewFallbackSource(primary Source) *FallbackSource {
	return &FallbackSource{Primary: primary}
}

// Name implements Source.
func (f *FallbackSource) Name() string {
	return f.Primary.Name() + "+static"
}

// EmbodiedKg implements Source.
func (f *FallbackSource) EmbodiedKg(ctx context.Context, c greenops.DeviceCategory) (float64, error) {
	kg, err := f.Primary.EmbodiedKg(ctx, c)
	if err == nil {
		return kg, nil
	}
	if errors.Is(err, context.Canceled) {
		return 0, err
	}

	fallback := greenops.EmbodiedKg(c)
	ev := logging.FromContext(ctx).Warn()
	if errors.Is(err, ErrNoArchetype) {
		ev = logging.FromContext(ctx).Debug()
	}
	ev.
		Str("component", "fabrication").
		Str("source", f.Primary.Name()).
		Str("category", string(c)).
		Float64("fallback_kg", fallback).
		Err(err).
		Msg("embodied CO2 lookup failed, using built-in value")

	return fallback, nil
}
