package router

import (
	"github.com/LightFelicis/CorrelatedTCPServers/http"
)

// Router decides how requests are answered. Implementations must be safe for concurrent
// use, as a single instance serves all the connections.
type Router interface {
	// OnRequest is called for every successfully assembled request.
	OnRequest(request *http.Request) *http.Response
	// OnError is called when the request can't be served. The request is nil, if the
	// message was malformed and couldn't be assembled at all.
	OnError(request *http.Request, err error) *http.Response
}
