// Package textutil provides small text helpers shared across packages:
// filename sanitization and string similarity scoring.
package textutil
