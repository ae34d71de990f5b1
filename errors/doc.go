// Package errors provides structured error values for asynckit.
// Each AppError carries a machine-readable code so callers can tell protocol
// violations and configuration problems apart from the failures their own
// iterators report.
package errors
