/*
Package gw defines the building blocks of a minimal HTTP resource gateway.

A [Resource] bundles a [Handler] per HTTP verb with optional cross-origin ([CORSPolicy]),
body decoding ([BodyConfig]) and authorization ([AuthFunc]) configuration.
Resources are stored by name in a [Registry].

Package gateway dispatches requests to the Resources of a Registry:

	g := gateway.New(gateway.WithLogger(logger.New()))
	g.Add("users", gw.Resource{
		Get: func(w http.ResponseWriter, r *http.Request) error {
			// r.URL.Path is relative to /users
			return nil
		},
	})

	http.ListenAndServe(":3000", g)

A request to GET / lists the registered names as a JSON array.
A request to /{name}/... reaches the Handler matching its verb on the Resource stored under name.

Handlers find the decoded request body with [BodyFromContext].
*/
package gw
