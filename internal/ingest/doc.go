// Package ingest reads equipment inventories and cloud emission exports.
//
// Inventory files come from spreadsheets edited by hand, so column names are
// resolved once from an ordered list of French and English synonyms and
// every cell is parsed leniently: a value that cannot be read falls back to
// its default and the field name is recorded on the record instead of
// failing the run. Only structural problems (no rows, no label column,
// unreadable file) are reported as errors.
package ingest
