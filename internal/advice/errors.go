package advice

import "errors"

var (
	// ErrUnavailable indicates the provider could not be reached.
	ErrUnavailable = errors.New("advice: provider unavailable")
	// ErrUnauthorized indicates the provider rejected the credentials.
	ErrUnauthorized = errors.New("advice: unauthorized (API key missing or invalid)")
	// ErrRateLimited indicates the provider rate limit was hit.
	ErrRateLimited = errors.New("advice: rate limited")
	// ErrUnknownProvider indicates an unsupported provider name in config.
	ErrUnknownProvider = errors.New("advice: unknown provider")
)
