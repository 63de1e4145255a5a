// Package web serves the poster page and its JSON/image API.
package web

import "context"

// Server is a long-running network service.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

// NoopServer is used when serving is disabled.
type NoopServer struct{}

func (n *NoopServer) Start(ctx context.Context) error { return nil }
func (n *NoopServer) Stop() error                     { return nil }
