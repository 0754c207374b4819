package service

import "errors"

// Fatal errors abort the operation and are surfaced to the caller.
var (
	ErrRemoteUnavailable = errors.New("booking backend unavailable")
	ErrNotSignedIn       = errors.New("not signed in")
)

// Recovered errors report a degraded path that still produced a usable
// result. Callers treat them as success after logging.
var (
	ErrCatalogFallback = errors.New("catalog unavailable, fallback list served")
	ErrCacheRecovered  = errors.New("local cache unreadable, treated as empty")
)

// Recovered reports whether err only marks a recovered degradation.
func Recovered(err error) bool {
	return errors.Is(err, ErrCatalogFallback) || errors.Is(err, ErrCacheRecovered)
}
