package session

import (
	"context"
	"sync"
)

// Viewer holds at most one open session. Opening a key closes the previous
// session first, so its pending results are dropped.
type Viewer struct {
	deps Deps

	mu  sync.Mutex
	cur *Session
}

func NewViewer(deps Deps) *Viewer {
	return &Viewer{deps: deps}
}

func (v *Viewer) Open(ctx context.Context, key string) (*Session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cur != nil {
		_ = v.cur.Close()
		v.cur = nil
	}

	s, err := Open(ctx, key, v.deps)
	if err != nil {
		return nil, err
	}
	v.cur = s
	return s, nil
}

// Current returns the open session, or nil when none is open or it has
// stopped on its own.
func (v *Viewer) Current() *Session {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cur == nil {
		return nil
	}
	select {
	case <-v.cur.Done():
		_ = v.cur.Close()
		v.cur = nil
		return nil
	default:
		return v.cur
	}
}

func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cur == nil {
		return nil
	}
	err := v.cur.Close()
	v.cur = nil
	return err
}
