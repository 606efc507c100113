package entity

import "errors"

// Domain errors
var (
	// Configuration errors
	ErrUnknownTenant = errors.New("unknown tenant")

	// Ingestion errors
	ErrNoDocuments = errors.New("no documents found for tenant")
	ErrNotIngested = errors.New("tenant is not ingested")

	// External service errors
	ErrGenerationFailed  = errors.New("generation failed")
	ErrTranslationFailed = errors.New("translation failed")
	ErrParseFailed       = errors.New("failed to parse structured output")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
