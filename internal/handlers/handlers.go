// Package handlers exposes the interactive variant: a read/toggle
// surface over an in-memory set of generated entries.
package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"gitfolio/internal/format"
	"gitfolio/internal/portfolio"
)

// Handler serves generated entries and their enable toggles.
type Handler struct {
	mu      sync.Mutex
	entries []portfolio.PortfolioEntry
}

// NewHandler creates a handler over a generated entry set.
func NewHandler(entries []portfolio.PortfolioEntry) *Handler {
	return &Handler{entries: entries}
}

// entryView adds the transient enabled flag to the wire shape. The
// flag exists only on this surface; exports never carry it.
type entryView struct {
	portfolio.PortfolioEntry
	Enabled bool `json:"enabled"`
}

// Health responds to health checks.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListProjects returns every entry with its enabled state.
func (h *Handler) ListProjects(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	views := make([]entryView, 0, len(h.entries))
	for _, e := range h.entries {
		views = append(views, entryView{PortfolioEntry: e, Enabled: e.Enabled})
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

// ToggleProject flips the enabled flag of one entry by name.
func (h *Handler) ToggleProject(c *gin.Context) {
	name := c.Param("name")

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if h.entries[i].Name == name {
			h.entries[i].Enabled = !h.entries[i].Enabled
			c.JSON(http.StatusOK, gin.H{"name": name, "enabled": h.entries[i].Enabled})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "project not found: " + name})
}

// Export serializes the currently enabled entries in the requested
// format (query parameter "format", default json).
func (h *Handler) Export(c *gin.Context) {
	formatName := c.DefaultQuery("format", format.FormatJSON)

	h.mu.Lock()
	entries := make([]portfolio.PortfolioEntry, len(h.entries))
	copy(entries, h.entries)
	h.mu.Unlock()

	out, err := format.Entries(entries, formatName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := "application/json"
	switch formatName {
	case format.FormatYAML:
		contentType = "application/yaml"
	case format.FormatMarkdown:
		contentType = "text/markdown"
	}
	c.Data(http.StatusOK, contentType, []byte(out))
}
