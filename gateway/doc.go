/*
Package gateway dispatches HTTP requests to the Resources registered with a Gateway.

	g := gateway.New(gateway.WithAuthTimeout(5 * time.Second)).
		Add("users", gw.Resource{
			Get: func(w http.ResponseWriter, r *http.Request) error {
				// r.URL.Path is "/123" for GET /users/123
				return json.NewEncoder(w).Encode(lookup(r.URL.Path))
			},
		})

	http.ListenAndServe(":3000", g)

The first segment of a request's path names the Resource; the remainder is what its Handler sees.
GET / responds with a JSON array of every registered name.

Failures map to status codes with empty bodies:

	unknown Resource                       404
	unsupported method                     405
	AuthFunc denied or erred               401
	AuthFunc undecided by the deadline     408
	preprocessing or Handler error, panic  500

Every failure is logged at the error level; every successful dispatch at the info level.
*/
package gateway
