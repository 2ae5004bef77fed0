// Package server exposes a channel.Dispatcher over HTTP.
//
// Every method is reachable as POST /v1/channel/{method}; the JSON body is
// the argument map and may be empty. Responses share one envelope:
//
//	{"errors": ["..."], "success": false, "data": null}
//
// Unknown methods and missing contacts answer 404, invalid arguments 400, a
// full query queue 503 and store failures 500. GET /healthz reports
// liveness.
package server
