package gw

import "context"

type Key string

const (
	// BodyKey stashes the payload decoded from an HTTP request body.
	BodyKey Key = "BodyKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by the gateway.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "gw context key: " + string(k)
}

// NewBodyContext attaches the decoded body of a request to ctx, returning the resulting context.
// A body already attached to ctx is replaced.
func NewBodyContext(ctx context.Context, body any) context.Context {
	return context.WithValue(ctx, BodyKey, body)
}

// BodyFromContext retrieves the decoded body attached to ctx.
// The second return value reports whether a body was attached at all.
//
// The concrete type depends on the decoding mode:
//   - json: whatever [encoding/json] decodes into an any, usually map[string]any or []any
//   - text: string
//   - urlencoded: [net/url.Values]
//   - raw: []byte
func BodyFromContext(ctx context.Context) (any, bool) {
	val := ctx.Value(BodyKey)
	return val, val != nil
}
