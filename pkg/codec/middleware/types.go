// Package middleware provides wrappers that add behavior to a Codec
// without touching the domain encoding itself.
package middleware

import "github.com/aretw0/memimg/pkg/ports"

// Middleware allows wrapping a Codec to add behavior.
type Middleware[C any] func(ports.Codec[C]) ports.Codec[C]

// Chain composes middlewares so the first one listed is outermost.
func Chain[C any](codec ports.Codec[C], middlewares ...Middleware[C]) ports.Codec[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		codec = middlewares[i](codec)
	}
	return codec
}
