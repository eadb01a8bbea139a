/*
Package router mounts gateways behind a stack of middlewares shared by every request.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as a thin wrapper around that package.

A gateway does its own routing by Resource name, so a [*Router] typically funnels
every request to one through CatchAll, or mounts it under a prefix with Mount:

	r := router.New(env, middleware.LogRequest(log))
	r.OnEveryRequest(middleware.RequestID(), middleware.InjectIPAddress())
	r.Handle(router.Route{Path: "/healthz", Method: http.MethodGet, Handler: healthz})
	r.Mount("/api", g)

Routes registered with Handle take precedence over a CatchAll registered after them.
*/
package router
