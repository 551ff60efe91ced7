package sweep

import (
	"path/filepath"
	"sync"
)

// dirGuard hands out one mutex per directory so that cleanup passes and
// moves touching the same directory never overlap. An entry lives only
// while some caller holds or waits on it.
type dirGuard struct {
	mu    sync.Mutex
	locks map[string]*dirLock
}

type dirLock struct {
	mu   sync.Mutex
	refs int
}

func newDirGuard() *dirGuard {
	return &dirGuard{locks: make(map[string]*dirLock)}
}

// lock blocks until dir is free and returns the matching unlock func.
func (g *dirGuard) lock(dir string) func() {
	key := filepath.Clean(dir)

	g.mu.Lock()
	l, ok := g.locks[key]
	if !ok {
		l = &dirLock{}
		g.locks[key] = l
	}
	l.refs++
	g.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		g.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, key)
		}
		g.mu.Unlock()
	}
}
