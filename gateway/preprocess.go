package gateway

import (
	"fmt"
	"net/http"

	"github.com/cloud-cli/gw"
)

// A CORSPreprocessor negotiates cross-origin headers according to a Resource's policy.
//
// Preprocess reports whether dispatching should continue to the Resource's Handler.
// It does not when the CORSPreprocessor answered the request itself, e.g., a preflight request.
type CORSPreprocessor interface {
	Preprocess(policy gw.CORSPolicy, w http.ResponseWriter, r *http.Request) (bool, error)
}

// A BodyDecoder decodes a request body for one gw.BodyMode.
//
// Decode reports whether it consumed the body.
// A BodyDecoder leaves requests it does not apply to alone.
type BodyDecoder interface {
	Decode(mode gw.BodyMode, opts gw.BodyOptions, r *http.Request) (any, bool, error)
}

// preprocessCORS applies policy, reporting whether dispatching continues.
func (g *Gateway) preprocessCORS(policy gw.CORSPolicy, w http.ResponseWriter, r *http.Request) (bool, error) {
	next, err := g.cors.Preprocess(policy, w, r)
	if err != nil {
		return false, internal(fmt.Errorf("cross-origin preprocessing failed: %w", err))
	}

	return next, nil
}

// decodeBody tries each configured mode in turn,
// attaching the value decoded by the first mode consuming the body to the returned request.
func (g *Gateway) decodeBody(cfg gw.BodyConfig, r *http.Request) (*http.Request, error) {
	for _, mode := range cfg.Modes() {
		val, consumed, err := g.body.Decode(mode, *cfg.Options(mode), r)
		if err != nil {
			return r, internal(fmt.Errorf("decoding %s body failed: %w", mode, err))
		}

		if consumed {
			return r.WithContext(gw.NewBodyContext(r.Context(), val)), nil
		}
	}

	return r, nil
}
