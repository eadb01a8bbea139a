package middleware

import (
	"net/http"

	"github.com/cloud-cli/gw"
	"github.com/gorilla/handlers"
)

const defaultOptionsStatus = http.StatusNoContent

var defaultAllowedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodPost,
	http.MethodDelete,
}

// CORS sets "Access-Control-Allow" style headers on a response
// according to the policy.
//
// Unless policy.PreflightContinue is set, CORS answers preflight requests itself
// and does not call the next handler.
func CORS(policy gw.CORSPolicy) Adapter {
	methods := policy.AllowedMethods
	if len(methods) == 0 {
		methods = defaultAllowedMethods
	}

	opts := []handlers.CORSOption{
		handlers.AllowedMethods(methods),
		handlers.OptionStatusCode(optionsStatus(policy)),
	}

	if len(policy.AllowedOrigins) > 0 {
		opts = append(opts, handlers.AllowedOrigins(policy.AllowedOrigins))
	}

	if len(policy.AllowedHeaders) > 0 {
		opts = append(opts, handlers.AllowedHeaders(policy.AllowedHeaders))
	}

	if len(policy.ExposedHeaders) > 0 {
		opts = append(opts, handlers.ExposedHeaders(policy.ExposedHeaders))
	}

	if policy.AllowCredentials {
		opts = append(opts, handlers.AllowCredentials())
	}

	if policy.MaxAge > 0 {
		opts = append(opts, handlers.MaxAge(policy.MaxAge))
	}

	if policy.PreflightContinue {
		opts = append(opts, handlers.IgnoreOptions())
	}

	return handlers.CORS(opts...)
}

func optionsStatus(policy gw.CORSPolicy) int {
	if policy.OptionsStatus == 0 {
		return defaultOptionsStatus
	}

	return policy.OptionsStatus
}

// CORSPreprocessor negotiates cross-origin headers for a gateway Resource using CORS.
type CORSPreprocessor struct{}

// Preprocess applies policy to the request and response.
// Preprocess reports whether the request should continue to the Resource's Handler.
// It does not when the request was a preflight request CORS answered itself.
// A preflight request from an origin policy does not allow gets no "Access-Control-Allow" headers,
// and is answered with the policy's OptionsStatus unless policy.PreflightContinue is set.
//
// Requests without an "Origin" header are not cross-origin requests
// and always continue.
func (CORSPreprocessor) Preprocess(policy gw.CORSPolicy, w http.ResponseWriter, r *http.Request) (bool, error) {
	if r.Header.Get("Origin") == "" {
		return true, nil
	}

	var next bool
	hw := &headWatcher{ResponseWriter: w}
	CORS(policy)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		next = true
	})).ServeHTTP(hw, r)

	if !next && !hw.wrote {
		if policy.PreflightContinue {
			return true, nil
		}

		w.WriteHeader(optionsStatus(policy))
	}

	return next, nil
}

// A headWatcher records whether a response head has been written through it.
type headWatcher struct {
	http.ResponseWriter

	wrote bool
}

func (hw *headWatcher) WriteHeader(status int) {
	hw.wrote = true
	hw.ResponseWriter.WriteHeader(status)
}

func (hw *headWatcher) Write(b []byte) (int, error) {
	hw.wrote = true
	return hw.ResponseWriter.Write(b)
}

func (hw *headWatcher) Unwrap() http.ResponseWriter { return hw.ResponseWriter }
