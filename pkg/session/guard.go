package session

import (
	"context"
	"sync"

	"github.com/aretw0/memimg"
	"github.com/aretw0/memimg/pkg/domain"
)

// Guard wraps an Engine with a read/write lock: at most one command at a
// time, any number of concurrent queries. A query observed concurrently
// with an in-flight command sees either the pre- or the post-command
// state, never a partial one.
type Guard[S domain.Cloneable[S], C domain.Command[S]] struct {
	mu     sync.RWMutex
	engine *memimg.Engine[S, C]
}

// NewGuard wraps engine. The engine must not be used directly afterwards.
func NewGuard[S domain.Cloneable[S], C domain.Command[S]](engine *memimg.Engine[S, C]) *Guard[S, C] {
	return &Guard[S, C]{engine: engine}
}

// ExecuteCommand runs one command with exclusive access to the engine.
func (g *Guard[S, C]) ExecuteCommand(ctx context.Context, command C) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.ExecuteCommand(ctx, command)
}

// Close releases the engine's event log.
func (g *Guard[S, C]) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Close()
}

// ExecuteQuery runs a read-only query under a shared lock.
func ExecuteQuery[S domain.Cloneable[S], C domain.Command[S], R any](g *Guard[S, C], query domain.Query[S, R]) (R, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return memimg.ExecuteQuery(g.engine, query)
}
