package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/http/middleware"
	"github.com/gorilla/mux"
)

// A Route maps a path and HTTP method to an [http.Handler]
// served next to, rather than through, a gateway, e.g., a liveness probe.
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter
}

// Router routes requests to gateways mounted on it.
type Router struct {
	Env           gw.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
func New(env gw.Environment, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{Env: env, logReq: logReq, r: mux.NewRouter()}
}

// CatchAll sets up a handler for all routes not otherwise registered to funnel to,
// e.g., a gateway serving from the root path.
func (r *Router) CatchAll(handler http.Handler) {
	r.r.PathPrefix("/").Handler(r.chain(handler))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.Handler] as the default handler
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.Handler) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter{}, middlewares...), route.Middlewares...)
		r.r.Handle(route.Path, r.chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// Mount serves handler for every request whose path falls under prefix,
// stripping prefix before handler sees the request.
//
// e.g., r.Mount("/api", g) has g handle GET /api/users as GET /users
func (r *Router) Mount(prefix string, handler http.Handler) {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		r.CatchAll(handler)
		return
	}

	prefix = "/" + prefix
	r.r.PathPrefix(prefix + "/").Handler(r.chain(http.StripPrefix(prefix, handler)))
	r.r.Path(prefix).Handler(r.chain(rootOf(prefix, handler)))
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// chain wraps handler in panic reporting, then every request middleware, then middlewares.
func (r *Router) chain(handler http.Handler, middlewares ...middleware.Adapter) http.Handler {
	mws := append(append([]middleware.Adapter{}, r.everyReqStack...), middlewares...)
	return middleware.Chain(middleware.ReportPanic(r.Env)(handler), mws...)
}

// rootOf serves requests for exactly prefix as requests for "/".
func rootOf(prefix string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r2 := new(http.Request)
		*r2 = *req
		r2.URL = new(url.URL)
		*r2.URL = *req.URL
		r2.URL.Path = "/"
		r2.URL.RawPath = ""
		handler.ServeHTTP(w, r2)
	})
}
