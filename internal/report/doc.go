// Package report exports evaluated rows to CSV and XLSX and reads CSV
// exports back.
//
// Figures are rounded half away from zero with shopspring/decimal: one
// decimal place for energy, CO2 and currency values, whole euros for the
// organizational costs.
package report
