package gw

import "net/url"

const (
	// LogMaskVal stands in for secrets, e.g., a JWT passed as a query param,
	// in logged request URIs.
	LogMaskVal = "xxxxxx"

	// ErrorLogType marks a record emitted when dispatching a request failed.
	ErrorLogType = "error"

	// RequestLogType marks a record emitted when a resource handled a request.
	RequestLogType = "request"
)

// Mask collapses every value under key in vals into a single LogMaskVal,
// leaving vals without key untouched.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals.Set(key, LogMaskVal)
}
