// Package session provides mutual exclusion around a memimg engine.
//
// The engine core is deliberately single-threaded: two concurrent
// commands would each clone the same pre-mutation state and race to swap
// their clone in, losing one of the two effects. Guard serializes
// command execution while allowing queries to run concurrently.
package session
