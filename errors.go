package bivariate

import "errors"

// Sentinel errors for the bivariate package.
var (
	// ErrUnclassified is returned when a value lies outside every class range.
	ErrUnclassified = errors.New("bivariate: value outside all class ranges")

	// ErrConfig is returned for malformed configuration: non-square manual
	// colour tables, unparseable colours or counts in style documents.
	ErrConfig = errors.New("bivariate: invalid configuration")

	// ErrTooFewClasses is returned when fewer than two classes are requested.
	ErrTooFewClasses = errors.New("bivariate: number of classes must be at least 2")

	// ErrMissingAttribute is returned when a feature lacks a numeric attribute.
	ErrMissingAttribute = errors.New("bivariate: missing numeric attribute")

	// ErrNoClasses is returned when a field has not been classified yet.
	ErrNoClasses = errors.New("bivariate: field has no classes")
)
