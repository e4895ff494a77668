// Package ports defines the driven-side interfaces of the memimg engine.
//
// The engine core depends only on these interfaces; concrete adapters
// (file, memory, redis) live under pkg/adapters and are swappable.
package ports
