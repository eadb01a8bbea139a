// Package metric provides Prometheus metrics for a gateway:
// dispatched requests by resource, method and status,
// plus how long dispatching and authorization take.
package metric
