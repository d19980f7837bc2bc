// Package engine turns equipment inventory rows into economic and ecological
// estimates and a Keep / Buy / Lease recommendation per row.
//
// Every calculation in this package is a pure function of one
// EquipmentRecord, the shared immutable Assumptions and a pre-resolved
// embodied-CO2 lookup. Rows never read each other, so Evaluate may process
// them concurrently; fleet totals are derived afterwards by multiplying
// per-unit figures by quantity and summing.
package engine
