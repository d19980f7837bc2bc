// Package fabrication resolves the embodied (manufacturing) CO2 of each
// device category.
//
// A Source answers one category at a time. StaticSource serves the built-in
// table; HTTPSource queries a Boavizta-compatible API; CachedSource and
// FallbackSource wrap any other source. Resolve asks a source for every
// category up front and freezes the answers in a Table, which the row
// pipeline reads without further I/O.
package fabrication
