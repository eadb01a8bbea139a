/*
The middleware package defines what a middleware is in a gateway and a set of basic middlewares.

The available middlewares are:
  - CORS
  - ForceHTTPS
  - Idempotent
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

CORSPreprocessor runs CORS for a single gateway Resource
and is what a gateway uses by default to negotiate cross-origin headers.

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs),
		middleware.LogRequest(log),
		middleware.Idempotent(middleware.NewReplayMap(), sha256.New, middleware.DefaultIdempotentBodyLimit),
	}
*/
package middleware
