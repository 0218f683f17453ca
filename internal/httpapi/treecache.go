package httpapi

import (
	"context"
	"sync"

	"github.com/finite-collective/docdesk/pkg/docs"
	"github.com/finite-collective/docdesk/pkg/store"
)

// treeCache memoizes the built tree between filesystem changes. Walking the
// root and parsing every sidecar on each request is wasteful when the UI
// polls the tree; the store's watcher tells us exactly when to rebuild.
type treeCache struct {
	mu    sync.Mutex
	nodes []*docs.Node
	valid bool
}

func (t *treeCache) get(ctx context.Context, st *store.Store) ([]*docs.Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.valid {
		return t.nodes, nil
	}

	nodes, err := st.Tree(ctx)
	if err != nil {
		return nil, err
	}
	t.nodes = nodes
	t.valid = true
	return nodes, nil
}

func (t *treeCache) invalidate() {
	t.mu.Lock()
	t.valid = false
	t.nodes = nil
	t.mu.Unlock()
}

// WatchInvalidate subscribes to store change events and drops the cached tree
// on every one. It blocks until the context is canceled or the watcher fails.
func (a *API) WatchInvalidate(ctx context.Context) error {
	events, err := a.store.Watch(ctx)
	if err != nil {
		return err
	}

	for ev := range events {
		a.logger.Debug("tree cache invalidated", "event", ev.Type, "path", ev.Path)
		a.tree.invalidate()
	}
	return nil
}
