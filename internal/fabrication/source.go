package fabrication

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/greenroi/internal/greenops"
	"github.com/rshade/greenroi/internal/logging"
)

// ErrNoArchetype is returned when a source has no data for a category.
var ErrNoArchetype = errors.New("no archetype for category")

// resolveConcurrency bounds parallel lookups in Resolve.
const resolveConcurrency = 4

// Source returns the total embodied CO2 in kg for one unit of a category.
type Source interface {
	Name() string
	EmbodiedKg(ctx context.Context, c greenops.DeviceCategory) (float64, error)
}

// StaticSource serves the built-in table. It never fails.
type StaticSource struct{}

// Name implements Source.
func (StaticSource) Name() string { return "static" }

// EmbodiedKg implements Source.
func (StaticSource) EmbodiedKg(_ context.Context, c greenops.DeviceCategory) (float64, error) {
	return greenops.EmbodiedKg(c), nil
}

// Table is a resolved, read-only category to kg mapping.
type Table struct {
	source string
	values map[greenops.DeviceCategory]float64
}

// NewTable copies values into a Table labelled with source.
func NewTable(source string, values map[greenops.DeviceCategory]float64) Table {
	return Table{source: source, values: maps.Clone(values)}
}

// StaticTable returns the built-in values for every category.
func StaticTable() Table {
	values := make(map[greenops.DeviceCategory]float64, len(greenops.AllCategories()))
	for _, c := range greenops.AllCategories() {
		values[c] = greenops.EmbodiedKg(c)
	}
	return Table{source: StaticSource{}.Name(), values: values}
}

// EmbodiedKg returns the resolved value, or the built-in one for categories
// that were never resolved.
func (t Table) EmbodiedKg(c greenops.DeviceCategory) float64 {
	if v, ok := t.values[c]; ok {
		return v
	}
	return greenops.EmbodiedKg(c)
}

// Source names the source the table was resolved from.
func (t Table) Source() string { return t.source }

// Values returns a copy of the resolved values.
func (t Table) Values() map[greenops.DeviceCategory]float64 {
	return maps.Clone(t.values)
}

// Resolve queries src for every category in cats concurrently and returns
// the answers as a Table. Any error from src aborts the whole resolution;
// wrap src in a FallbackSource to never fail.
func Resolve(ctx context.Context, src Source, cats []greenops.DeviceCategory) (Table, error) {
	log := logging.FromContext(ctx)

	results := make([]float64, len(cats))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for i, c := range cats {
		g.Go(func() error {
			kg, err := src.EmbodiedKg(gctx, c)
			if err != nil {
				return fmt.Errorf("resolving %s from %s: %w", c, src.Name(), err)
			}
			results[i] = kg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Table{}, err
	}

	values := make(map[greenops.DeviceCategory]float64, len(cats))
	for i, c := range cats {
		values[c] = results[i]
	}

	log.Debug().
		Str("component", "fabrication").
		Str("source", src.Name()).
		Int("categories", len(cats)).
		Msg("embodied CO2 table resolved")

	return Table{source: src.Name(), values: values}, nil
}
