package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/http/body"
	"github.com/cloud-cli/gw/http/middleware"
	"github.com/cloud-cli/gw/logger"
	"github.com/cloud-cli/gw/metric"
)

const (
	// DefaultAuthTimeout bounds how long an AuthFunc may take to decide.
	DefaultAuthTimeout = 30 * time.Second

	// DefaultPoweredBy is the X-Powered-By value set on dispatched requests.
	DefaultPoweredBy = "gw"

	unknownLabel = "unknown"
)

// A Gateway dispatches requests to the Resources registered with it.
//
// A request's first path segment names the Resource;
// its method names the Resource's Handler.
// Requests for the root path list the names of every registered Resource.
type Gateway struct {
	authTimeout time.Duration
	body        BodyDecoder
	cors        CORSPreprocessor
	l           logger.Logger
	metrics     *metric.Metrics
	poweredBy   string
	reg         *gw.Registry
}

// New constructs a *Gateway using the GatewayOptFns passed in.
//
// Without options, a Gateway has an empty gw.Registry,
// negotiates cross-origin headers with middleware.CORSPreprocessor,
// decodes bodies with body.Decoder and logs through logger.New.
// The authorization deadline is read from AUTH_TIMEOUT, defaulting to DefaultAuthTimeout.
func New(opts ...GatewayOptFn) *Gateway {
	g := &Gateway{
		authTimeout: gw.EnvVarOrDuration("AUTH_TIMEOUT", DefaultAuthTimeout),
		body:        body.Decoder{},
		cors:        middleware.CORSPreprocessor{},
		poweredBy:   DefaultPoweredBy,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.authTimeout <= 0 {
		g.authTimeout = DefaultAuthTimeout
	}

	if g.reg == nil {
		g.reg = gw.NewRegistry()
	}

	if g.l == nil {
		g.l = logger.New()
	}

	return g
}

// Add registers res under the lowercased name, returning the *Gateway for chaining.
func (g *Gateway) Add(name string, res gw.Resource) *Gateway {
	g.reg.Add(name, res)
	return g
}

// Registry exposes the *gw.Registry the Gateway dispatches from.
func (g *Gateway) Registry() *gw.Registry { return g.reg }

// ServeHTTP implements http.Handler by calling Dispatch.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) { g.Dispatch(w, r) }

// Dispatch routes r to a Resource's Handler, stepping through:
//
//  1. listing Resources, for GET /
//  2. validating the Resource and method
//  3. authorizing
//  4. negotiating cross-origin headers
//  5. decoding the body
//  6. stripping the Resource's name from the path
//  7. invoking the Handler
//  8. logging the outcome
//
// A failing step ends dispatching; the failure is logged and mapped to a status code by Status.
func (g *Gateway) Dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.Path == "/" {
		g.list(w)
		return
	}

	start := time.Now()
	sw := &statusWriter{ResponseWriter: w}
	rt := parseRoute(r)
	if err := g.dispatch(sw, r, rt); err != nil {
		g.fail(sw, rt, err)
		g.record(rt, sw, start)
		return
	}

	g.record(rt, sw, start)

	g.l.Info("request", &logger.LogContext{
		Type: gw.RequestLogType,
		Time: time.Now(),
		Data: map[string]any{"method": rt.method, "resource": rt.resource},
	})
}

// record observes the dispatch in the Gateway's metrics.
// Resources and methods it does not know are labeled "unknown".
func (g *Gateway) record(rt route, sw *statusWriter, start time.Time) {
	if g.metrics == nil {
		return
	}

	resource, method := rt.resource, rt.method
	if !g.reg.Has(resource) {
		resource = unknownLabel
	}

	if _, ok := gw.ParseMethod(method); !ok {
		method = unknownLabel
	}

	status := sw.status
	if status == 0 {
		status = http.StatusOK
	}

	g.metrics.RecordDispatch(resource, method, status, time.Since(start))
}

func (g *Gateway) list(w http.ResponseWriter) {
	b, err := json.Marshal(g.reg.List())
	if err != nil {
		g.fail(&statusWriter{ResponseWriter: w}, route{}, internal(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (g *Gateway) dispatch(w *statusWriter, r *http.Request, rt route) error {
	res, ok := g.reg.Get(rt.resource)
	if !ok {
		return fmt.Errorf("%w: no resource named %q", gw.ErrNotFound, rt.resource)
	}

	method, ok := gw.ParseMethod(rt.method)
	if !ok {
		return fmt.Errorf("%w: %q is not a supported method", gw.ErrMethodNotAllowed, rt.method)
	}

	handler := res.Handler(method)
	if handler == nil {
		return fmt.Errorf("%w: %s does not handle %s", gw.ErrMethodNotAllowed, rt.resource, method)
	}

	if err := g.authorize(w, r, rt, res.Auth); err != nil {
		return err
	}

	return g.serve(w, r, rt, res, handler)
}

// serve runs the steps following authorization, converting panics into internal errors.
func (g *Gateway) serve(w *statusWriter, r *http.Request, rt route, res gw.Resource, handler gw.Handler) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recovered(p)
		}
	}()

	if res.CORS != nil {
		next, err := g.preprocessCORS(*res.CORS, w, r)
		if err != nil || !next {
			return err
		}
	}

	if res.Body != nil {
		if r, err = g.decodeBody(*res.Body, r); err != nil {
			return err
		}
	}

	r = rewrite(r, rt)

	if g.poweredBy != "" {
		w.Header().Set("X-Powered-By", g.poweredBy)
	}

	if err := handler(w, r); err != nil {
		return internal(err)
	}

	return nil
}

// fail logs err and writes the status it maps to,
// unless a response head has already been written.
func (g *Gateway) fail(w *statusWriter, rt route, err error) {
	data := map[string]any{"method": rt.method, "resource": rt.resource}
	var ie *internalError
	if errors.As(err, &ie) {
		data["stack"] = string(ie.stack)
	}

	g.l.Error(err.Error(), &logger.LogContext{
		Type:  gw.ErrorLogType,
		Time:  time.Now(),
		Error: err,
		Data:  data,
	})

	if w.wroteHeader() {
		return
	}

	w.WriteHeader(Status(err))
}
