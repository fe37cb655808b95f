// Package language provides unified language code normalization and matching.
//
// Media track tags and user preference lists mix ISO 639-1 and ISO 639-2
// codes, alternate 639-2 forms ("fre" vs "fra"), and a few nonstandard
// codes seen in the wild ("jp"). All language comparisons are consolidated
// here so track selection and subtitle matching agree on equivalence.
package language
