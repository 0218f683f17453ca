package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finite-collective/docdesk/pkg/docs"
	"github.com/finite-collective/docdesk/pkg/store"
)

// API holds the handlers for the file-service surface.
type API struct {
	store  *store.Store
	logger *slog.Logger
	tree   treeCache
}

// NewAPI creates the handler set over a store.
func NewAPI(st *store.Store, logger *slog.Logger) *API {
	return &API{store: st, logger: logger}
}

func registerRoutes(r *gin.Engine, api *API) {
	r.GET("/health", api.handleHealth)

	apiGroup := r.Group("/api")
	{
		// A static /docs/tree route would conflict with the catch-all in
		// gin's router, so both operations share the wildcard.
		apiGroup.GET("/docs/*path", api.handleDocs)
		apiGroup.POST("/docs", api.handleWrite)
	}
}

func (a *API) handleDocs(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "tree" {
		a.handleTree(c)
		return
	}
	a.handleRead(c, path)
}

func (a *API) handleHealth(c *gin.Context) {
	if err := a.store.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "root": a.store.Root()})
}

func (a *API) handleTree(c *gin.Context) {
	tree, err := a.tree.get(c.Request.Context(), a.store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tree == nil {
		tree = []*docs.Node{}
	}
	c.JSON(http.StatusOK, tree)
}

func (a *API) handleRead(c *gin.Context, path string) {
	doc, err := a.store.Read(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, docs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": doc.Content, "metadata": doc.Metadata})
}

func (a *API) handleWrite(c *gin.Context) {
	var payload struct {
		Path     string        `json:"path" binding:"required"`
		Content  string        `json:"content"`
		Metadata docs.Metadata `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.store.Write(c.Request.Context(), payload.Path, payload.Content, payload.Metadata); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// A watcher may not be running; invalidate directly so the next tree
	// request sees the new file.
	a.tree.invalidate()

	c.JSON(http.StatusOK, gin.H{"success": true, "path": payload.Path})
}
