package ports

// Codec maps one command to one line of text and back. It is supplied by
// the calling domain; the engine imposes no wire format beyond "one
// command per line".
//
// Implementations must satisfy the round-trip law: Decode(Encode(c))
// yields a command equal to c for every valid c. Encode must never emit
// an embedded line terminator, so that one encoded command always maps
// to exactly one physical log line.
type Codec[C any] interface {
	Encode(command C) (string, error)
	Decode(line string) (C, error)
}
