// Package sanitizer normalizes free-form booking input before it is stored.
//
// Normalization never rejects input. Values that cannot be normalized are
// returned trimmed but otherwise verbatim, and every function is idempotent.
package sanitizer
