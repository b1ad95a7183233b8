package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
)

// New http.Server for handler. every request is bounded by config.Timeout through http.TimeoutHandler, request
// contexts derive from ctx.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	if config.Timeout > 0 {
		handler = http.TimeoutHandler(handler, config.Timeout, `{"error":"request timeout"}`)
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.Timeout + config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
}
