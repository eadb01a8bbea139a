package gateway

import (
	"net/http"
	"net/url"
	"strings"
)

// A route is what the gateway reads from a request's method and path.
type route struct {
	// resource is the lowercased first path segment.
	resource string

	// method is the lowercased HTTP verb.
	method string

	// subpath is the path below the resource, always beginning with "/".
	subpath string

	// rawSubpath is the escaped form of subpath when the request set URL.RawPath.
	rawSubpath string
}

// parseRoute splits the request's path into the resource name and the remaining subpath.
//
//	/users         => users, /
//	/users/123     => users, /123
//	/Users/1/posts => users, /1/posts
func parseRoute(r *http.Request) route {
	name, sub := splitPath(r.URL.Path)

	rt := route{
		resource: strings.ToLower(name),
		method:   strings.ToLower(r.Method),
		subpath:  sub,
	}

	if r.URL.RawPath != "" {
		_, rt.rawSubpath = splitPath(r.URL.RawPath)
	}

	return rt
}

func splitPath(p string) (string, string) {
	name, rest, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	return name, "/" + rest
}

// rewrite returns a shallow copy of r whose path is the route's subpath,
// the way [net/http.StripPrefix] does.
func rewrite(r *http.Request, rt route) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = rt.subpath
	r2.URL.RawPath = rt.rawSubpath
	r2.RequestURI = r2.URL.RequestURI()

	return r2
}
