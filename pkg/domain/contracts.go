package domain

// Cloneable is satisfied by system types that can produce a deep,
// independent copy of themselves. The clone must share no mutable data
// with the original: the engine mutates clones freely and discards them
// on failure.
type Cloneable[S any] interface {
	Clone() S
}

// Command mutates the system state S. Implementations must be
// deterministic (same command + equal state = equal resulting state) and
// serializable by the domain's codec, since successful commands are
// persisted to the event log and re-applied on replay.
//
// ApplyTo either completes the whole transition or returns an error.
// Partially applied mutations are fine: the engine only ever applies
// commands to a shadow copy, which is discarded on error.
type Command[S any] interface {
	ApplyTo(system S) error
}

// Query extracts a read-only result R from the system state S.
// Implementations must not mutate S and are never persisted.
type Query[S, R any] interface {
	ExtractFrom(system S) (R, error)
}
