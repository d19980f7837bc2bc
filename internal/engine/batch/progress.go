package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks processed items and batches. Safe for concurrent use.
type Progress struct {
	mu               sync.Mutex
	totalItems       int
	totalBatches     int
	processedItems   int
	processedBatches int
	startTime        time.Time
}

// NewProgress starts tracking a run of totalItems split into totalBatches.
func NewProgress(totalItems, totalBatches int) *Progress {
	return &Progress{totalItems: totalItems, totalBatches: totalBatches, startTime: time.Now()}
}

// Add records one completed batch of n items and returns the new state.
func (p *Progress) Add(n int) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += n
	p.processedBatches++
	return p.snapshotLocked()
}

func (p *Progress) snapshotLocked() Snapshot {
	s := Snapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.processedItems,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.processedBatches,
		Elapsed:          time.Since(p.startTime),
	}
	if p.totalItems > 0 {
		s.PercentComplete = float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
	}
	return s
}

// Snapshot is an immutable copy of progress state.
type Snapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	PercentComplete  float64
	Elapsed          time.Duration
}

// IsComplete reports whether every item has been processed.
func (s Snapshot) IsComplete() bool {
	return s.ProcessedItems >= s.TotalItems
}
