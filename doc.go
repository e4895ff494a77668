/*
Package memimg is a generic memory-image engine: an in-memory domain model
whose only durable representation is an append-only log of the commands that
produced it. On restart, the live state is rebuilt by replaying the log from
the beginning, so no tables, indexes, or model serialization are needed.

It implements a "Shadow-Copy Transactional Core" architecture, separating
state-mutating Commands from read-only Queries and giving every command
whole-or-nothing semantics without any domain-side rollback logic.

# Concept

The engine owns an opaque system value supplied by your domain. Every
command request clones that value, applies the command to the clone, durably
appends the command to the event log, and only then swaps the clone in as
the new live state. A failure at any step discards the clone, so partial
mutations are never observable. Queries read the live state directly.

# Key Features

  - Crash consistency: the log is the single source of truth; replay
    reproduces the exact pre-crash state.
  - Shadow-copy transactions: multi-step commands roll back for free.
  - Hexagonal architecture: the core depends only on the EventLog and
    Codec ports; file, memory, and redis adapters are provided.
  - Strict contracts: commands must be deterministic and I/O-free, a
    property the replay mechanism depends on.

# Usage

Supply an empty system value, your command type, and an event log:

	ctx := context.Background()

	eventLog, err := file.Open[mydomain.Command]("data/events.log", mydomain.Codec())
	if err != nil {
		log.Fatal(err)
	}

	engine, err := memimg.New(ctx, mydomain.NewSystem(), eventLog)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	if err := engine.ExecuteCommand(ctx, &mydomain.AddItem{SKU: "widget"}); err != nil {
		log.Fatal(err)
	}

	count, err := memimg.ExecuteQuery(engine, &mydomain.CountItems{})
	if err != nil {
		log.Fatal(err)
	}
	log.Println("items:", count)
*/
package memimg
