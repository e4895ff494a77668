// Package domain defines the contracts a concrete domain must satisfy to
// run inside the memimg engine: Command for state transitions, Query for
// read-only projections, and Cloneable for the shadow-copy mechanism.
//
// Implementations must be deterministic and free of I/O. The engine relies
// on determinism to reconstruct the exact same state when replaying the
// event log after a restart.
package domain
