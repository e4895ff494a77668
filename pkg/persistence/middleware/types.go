// Package middleware provides wrappers that add behavior to an EventLog
// (metrics, logging) without the log adapters knowing about it.
package middleware

import "github.com/aretw0/memimg/pkg/ports"

// Middleware allows wrapping an EventLog to add behavior.
type Middleware[C any] func(ports.EventLog[C]) ports.EventLog[C]

// Chain composes middlewares so the first one listed is outermost.
func Chain[C any](log ports.EventLog[C], middlewares ...Middleware[C]) ports.EventLog[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		log = middlewares[i](log)
	}
	return log
}
