package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrMissingAPIKey indicates no API key was configured
	ErrMissingAPIKey = errors.New("image API key is not configured")

	// ErrServerOffline indicates the image API is unreachable
	ErrServerOffline = errors.New("image API is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("API key is invalid")

	// ErrRateLimited indicates the API refused the request for exceeding its limit
	ErrRateLimited = errors.New("API rate limit exceeded")
)
