// Package batch splits inventory rows into fixed-size batches and runs a
// callback over them, either sequentially or with bounded concurrency.
//
// Each batch carries its offset into the original slice so callers can write
// results into a pre-sized output slice without locking: batches never
// overlap, so every index is written by exactly one goroutine.
package batch
