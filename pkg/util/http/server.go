package httputil

import (
	"fmt"
	"net/http"
	"time"
)

// HTTPSrvPrm groups the required parameters of the Server's constructor.
type HTTPSrvPrm struct {
	// TCP address for the server to listen on, must not be empty.
	Address string

	// Must not be nil.
	Handler http.Handler
}

// Server is an http.Server with a bounded graceful shutdown. It serves
// Prometheus metrics of the service.
type Server struct {
	shutdownTimeout time.Duration

	srv *http.Server
}

// New creates a new instance of the Server.
//
// Panics if address is empty, handler is nil or shutdown timeout
// is non-positive.
//
// The created Server does not require additional
// initialization and is completely ready for work.
func New(prm HTTPSrvPrm, opts ...Option) *Server {
	c := defaultCfg()

	for _, o := range opts {
		o(c)
	}

	switch {
	case prm.Address == "":
		panic("empty HTTP server address")
	case prm.Handler == nil:
		panic("nil HTTP handler")
	case c.shutdownTimeout <= 0:
		panic(fmt.Sprintf("non-positive HTTP server shutdown timeout %v", c.shutdownTimeout))
	}

	return &Server{
		shutdownTimeout: c.shutdownTimeout,
		srv: &http.Server{
			Addr:    prm.Address,
			Handler: prm.Handler,
		},
	}
}
