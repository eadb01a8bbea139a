package gw

import (
	"net/http"
	"strings"
)

// A Method is a lowercased HTTP verb a Resource can handle.
type Method string

const (
	MethodHead    Method = "head"
	MethodGet     Method = "get"
	MethodPost    Method = "post"
	MethodPut     Method = "put"
	MethodPatch   Method = "patch"
	MethodDelete  Method = "delete"
	MethodOptions Method = "options"
)

// Methods lists every Method a Resource can handle.
var Methods = []Method{
	MethodHead,
	MethodGet,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
	MethodOptions,
}

// ParseMethod lowercases the HTTP verb and reports whether it is one of Methods.
func ParseMethod(verb string) (Method, bool) {
	m := Method(strings.ToLower(verb))
	return m, m.Valid() == nil
}

func (m Method) String() string { return string(m) }

func (m Method) Valid() error {
	switch m {
	case MethodHead, MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodOptions:
		return nil
	default:
		return ErrNotValid
	}
}

// A Handler responds to a request routed to a Resource.
// The request's path is relative to the Resource's mount point.
//
// A Handler writes the response head and body itself.
// A returned error, as well as a panic, is reported to the client as a 500
// if the Handler has not yet written a response head.
type Handler func(w http.ResponseWriter, r *http.Request) error

// An AuthFunc decides whether a request may proceed to a Resource's Handler.
// Only true and a nil error authorize the request.
//
// The request's context is cancelled once the gateway stops waiting on the AuthFunc.
// From then on, nothing the AuthFunc writes reaches the response.
type AuthFunc func(w http.ResponseWriter, r *http.Request) (bool, error)

// A Resource is a named capability set: a Handler per HTTP verb
// plus optional cross-origin, body decoding and authorization configuration.
//
// A Resource is read, never mutated, by the gateway.
type Resource struct {
	Head    Handler
	Get     Handler
	Post    Handler
	Put     Handler
	Patch   Handler
	Delete  Handler
	Options Handler

	// Auth authorizes requests before any preprocessing occurs.
	// A nil Auth authorizes every request.
	Auth AuthFunc

	// Body, when set, decodes request payloads before they reach a Handler.
	Body *BodyConfig

	// CORS, when set, negotiates cross-origin headers before a Handler runs.
	CORS *CORSPolicy
}

// Handler retrieves the Handler for m, or nil when the Resource does not handle m.
func (res Resource) Handler(m Method) Handler {
	switch m {
	case MethodHead:
		return res.Head
	case MethodGet:
		return res.Get
	case MethodPost:
		return res.Post
	case MethodPut:
		return res.Put
	case MethodPatch:
		return res.Patch
	case MethodDelete:
		return res.Delete
	case MethodOptions:
		return res.Options
	default:
		return nil
	}
}

// A CORSPolicy configures how cross-origin headers are negotiated for a Resource.
// The zero value allows any origin.
type CORSPolicy struct {
	// AllowedOrigins lists origins allowed to make requests; "*" or none allows every origin.
	AllowedOrigins []string

	// AllowedMethods lists methods a preflight request may ask for.
	// None defaults to GET, HEAD, PUT, PATCH, POST and DELETE.
	AllowedMethods []string

	// AllowedHeaders lists headers a preflight request may ask for.
	AllowedHeaders []string

	// ExposedHeaders lists headers the client may read from the response.
	ExposedHeaders []string

	AllowCredentials bool

	// MaxAge sets, in seconds, how long a preflight response may be cached.
	MaxAge int

	// OptionsStatus is the status written for preflight requests; defaults to 204.
	OptionsStatus int

	// PreflightContinue passes preflight requests on to the Resource's Options Handler
	// instead of answering them.
	PreflightContinue bool
}

// A BodyMode is a way of decoding a request body.
type BodyMode string

const (
	BodyJSON       BodyMode = "json"
	BodyText       BodyMode = "text"
	BodyURLEncoded BodyMode = "urlencoded"
	BodyRaw        BodyMode = "raw"
)

func (m BodyMode) String() string { return string(m) }

// BodyOptions configure a single BodyMode.
// Zero values select the decoder's defaults.
type BodyOptions struct {
	// Limit caps the body size in bytes.
	Limit int64

	// Types lists the media types the mode decodes, e.g., "application/json" or "text/*".
	Types []string

	// Strict only accepts JSON objects and arrays. Applies to BodyJSON.
	Strict bool

	// DefaultCharset is assumed when the Content-Type sets none. Applies to BodyText.
	DefaultCharset string

	// ParameterLimit caps the number of parameters. Applies to BodyURLEncoded.
	ParameterLimit int
}

// A BodyConfig selects which BodyModes apply to a Resource's requests.
//
// Modes are tried in the order json, text, urlencoded, raw.
// The first mode matching a request's Content-Type consumes the body;
// the remaining modes then leave the request alone.
type BodyConfig struct {
	JSON       *BodyOptions
	Text       *BodyOptions
	URLEncoded *BodyOptions
	Raw        *BodyOptions
}

// Modes lists the configured BodyModes in the order they are tried.
func (c BodyConfig) Modes() []BodyMode {
	var modes []BodyMode
	for _, m := range []BodyMode{BodyJSON, BodyText, BodyURLEncoded, BodyRaw} {
		if c.Options(m) != nil {
			modes = append(modes, m)
		}
	}

	return modes
}

// Options retrieves the BodyOptions for m, or nil when m is not configured.
func (c BodyConfig) Options(m BodyMode) *BodyOptions {
	switch m {
	case BodyJSON:
		return c.JSON
	case BodyText:
		return c.Text
	case BodyURLEncoded:
		return c.URLEncoded
	case BodyRaw:
		return c.Raw
	default:
		return nil
	}
}
