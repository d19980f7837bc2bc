// Package cache stores embodied-CO2 lookups on disk so repeated runs do not
// query the remote fabrication source again.
//
// Entries are JSON files named after a SHA256 key in ~/.greenroi/cache/.
// Each entry records the source that produced it and expires after a TTL
// (seven days by default); expired entries read as misses and are removed
// by Purge.
package cache
