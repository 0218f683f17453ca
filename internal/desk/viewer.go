package desk

import (
	"context"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/finite-collective/docdesk/pkg/cache"
	"github.com/finite-collective/docdesk/pkg/client"
	"github.com/finite-collective/docdesk/pkg/docs"
)

// LoadResult carries a fetched document back to the desk, tagged with the
// request generation it was issued under.
type LoadResult struct {
	Gen int
	Doc docs.Document
	Err error
}

// Viewer resolves a selected file into displayable content: cache first,
// then the file-service. Selections are numbered; a result arriving for an
// older generation is stale and must be discarded (last selection wins).
type Viewer struct {
	client *client.Client
	cache  *cache.Cache
	gen    int
}

// NewViewer creates a viewer over a file-service client and document cache.
func NewViewer(c *client.Client, dc *cache.Cache) *Viewer {
	return &Viewer{client: c, cache: dc}
}

// Select starts a new selection generation. On a cache hit the result is
// returned immediately with hit=true; otherwise the caller fetches
// asynchronously with the returned generation.
func (v *Viewer) Select(node *docs.Node) (result LoadResult, hit bool) {
	v.gen++

	entry, ok := v.cache.Get(node.Path)
	if !ok {
		return LoadResult{Gen: v.gen}, false
	}
	return LoadResult{
		Gen: v.gen,
		Doc: docs.Document{Path: node.Path, Content: entry.Content, Metadata: entry.Metadata},
	}, true
}

// Current reports whether a result belongs to the latest selection.
func (v *Viewer) Current(r LoadResult) bool {
	return r.Gen == v.gen
}

// Fetch retrieves a document from the file-service, merges the tree node's
// metadata with the fetched metadata, stamps the derived fields and caches
// the result. Safe to call off the UI goroutine: it touches only the client
// and the (locked) cache.
func (v *Viewer) Fetch(ctx context.Context, gen int, node *docs.Node) LoadResult {
	doc, err := v.client.GetDocument(ctx, node.Path)
	if err != nil {
		return LoadResult{Gen: gen, Err: err}
	}

	meta := node.Metadata.Clone()
	for k, val := range doc.Metadata {
		meta[k] = val
	}
	meta[docs.MetaReadingTime] = docs.EstimateReadingTime(doc.Content)
	meta[docs.MetaLastFetched] = time.Now().UTC().Format(time.RFC3339)
	doc.Metadata = meta

	v.cache.Put(doc.Path, doc.Content, doc.Metadata)
	return LoadResult{Gen: gen, Doc: doc}
}

// Render turns Markdown into styled terminal output at the given width.
// Render failures fall back to the raw content rather than an error state;
// the document is still readable.
func Render(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
