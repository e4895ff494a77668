package memimg_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/memimg"
	"github.com/aretw0/memimg/pkg/adapters/memory"
)

// A minimal domain: a set of registered usernames.

type roster struct {
	Users map[string]bool
}

func (r *roster) Clone() *roster {
	clone := &roster{Users: make(map[string]bool, len(r.Users))}
	for u := range r.Users {
		clone.Users[u] = true
	}
	return clone
}

type signUp struct {
	Username string `json:"username"`
}

func (c *signUp) ApplyTo(r *roster) error {
	if r.Users[c.Username] {
		return fmt.Errorf("username taken: %s", c.Username)
	}
	r.Users[c.Username] = true
	return nil
}

type countUsers struct{}

func (countUsers) ExtractFrom(r *roster) (int, error) {
	return len(r.Users), nil
}

type signUpCodec struct{}

func (signUpCodec) Encode(c *signUp) (string, error) { return c.Username, nil }
func (signUpCodec) Decode(line string) (*signUp, error) {
	return &signUp{Username: line}, nil
}

// ExampleNew demonstrates running the engine against an in-memory event
// log. Swap in the file adapter for a durable log.
func ExampleNew() {
	ctx := context.Background()
	eventLog := memory.NewLog[*signUp](signUpCodec{})

	engine, err := memimg.New(ctx, &roster{Users: map[string]bool{}}, eventLog)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	_ = engine.ExecuteCommand(ctx, &signUp{Username: "ada"})
	_ = engine.ExecuteCommand(ctx, &signUp{Username: "grace"})

	// Rejected: the state and the log stay untouched.
	if err := engine.ExecuteCommand(ctx, &signUp{Username: "ada"}); err != nil {
		fmt.Println("rejected:", err)
	}

	n, _ := memimg.ExecuteQuery(engine, countUsers{})
	fmt.Println("users:", n)
	// Output:
	// rejected: command failure while executing command *memimg_test.signUp: username taken: ada
	// users: 2
}
