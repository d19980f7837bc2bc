package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch size limits.
const (
	DefaultBatchSize = 100
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// Batch is one contiguous slice of the input.
type Batch[T any] struct {
	// Index is the 0-based batch number.
	Index int

	// Offset is the position of Items[0] in the input slice.
	Offset int

	Items []T
}

// Callback processes a single batch.
type Callback[T any] func(ctx context.Context, b Batch[T]) error

// ProgressCallback is invoked after each batch completes.
type ProgressCallback func(snapshot Snapshot)

// Processor runs callbacks over fixed-size batches.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults creates a processor with DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Split returns the batches for items in order.
func (p *Processor[T]) Split(items []T) []Batch[T] {
	batches := make([]Batch[T], 0, (len(items)+p.batchSize-1)/p.batchSize)
	for start := 0; start < len(items); start += p.batchSize {
		end := min(start+p.batchSize, len(items))
		batches = append(batches, Batch[T]{Index: len(batches), Offset: start, Items: items[start:end]})
	}
	return batches
}

// Process runs callback over every batch in order and stops at the first error.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	if err := validateArgs(items, callback); err != nil {
		return err
	}

	batches := p.Split(items)
	progress := NewProgress(len(items), len(batches))

	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(ctx, b); err != nil {
			return fmt.Errorf("batch %d failed: %w", b.Index, err)
		}
		p.report(progress.Add(len(b.Items)))
	}
	return nil
}

// ProcessConcurrent runs callback over batches with at most maxConcurrency
// in flight. The first error cancels the context passed to the remaining
// callbacks and is returned.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback Callback[T],
	maxConcurrency int,
) error {
	if err := validateArgs(items, callback); err != nil {
		return err
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	batches := p.Split(items)
	progress := NewProgress(len(items), len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for _, b := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := callback(gctx, b); err != nil {
				return fmt.Errorf("batch %d failed: %w", b.Index, err)
			}
			p.report(progress.Add(len(b.Items)))
			return nil
		})
	}

	return g.Wait()
}

func (p *Processor[T]) report(s Snapshot) {
	if p.onProgress != nil {
		p.onProgress(s)
	}
}

func validateArgs[T any](items []T, callback Callback[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}
	return nil
}
