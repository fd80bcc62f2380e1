package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndreJorgeSenaiBA/Repox/config"
	"github.com/AndreJorgeSenaiBA/Repox/internal/gallery"
	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

const (
	// Version is reported by the health check
	Version = "1.0.0"

	cacheControl = "s-maxage=600, stale-while-revalidate"
	errorDetails = "Verify that the GitHub token is valid and has read access to the repository"
)

// Cataloger produces the gallery catalog
type Cataloger interface {
	Catalog(ctx context.Context) ([]gallery.FileRecord, gallery.Stats, error)
}

// Handlers holds all HTTP handlers
type Handlers struct {
	cfg     *config.Config
	catalog Cataloger
	log     *slog.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(cfg *config.Config, catalog Cataloger, log *slog.Logger) *Handlers {
	return &Handlers{
		cfg:     cfg,
		catalog: catalog,
		log:     log,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   Version,
	})
}

// ListFiles handles GET /api/get-files
func (h *Handlers) ListFiles(c *gin.Context) {
	records, _, ok := h.runCatalog(c)
	if !ok {
		return
	}

	body, err := json.Marshal(records)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, "application/json", body)
}

// GetStats handles GET /api/stats
func (h *Handlers) GetStats(c *gin.Context) {
	_, stats, ok := h.runCatalog(c)
	if !ok {
		return
	}

	if profile := c.Query("profile"); profile != "" {
		p, found := stats.Profiles[profile]
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found: " + profile})
			return
		}
		c.Header("Cache-Control", cacheControl)
		c.JSON(http.StatusOK, p)
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.JSON(http.StatusOK, stats)
}

// runCatalog checks the credential and runs the crawl. On failure it has
// already written the 500 response.
func (h *Handlers) runCatalog(c *gin.Context) ([]gallery.FileRecord, gallery.Stats, bool) {
	if err := h.cfg.RequireGitHubToken(); err != nil {
		h.log.Error("configuration error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, gallery.Stats{}, false
	}

	records, stats, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return nil, gallery.Stats{}, false
	}
	return records, stats, true
}

func (h *Handlers) fail(c *gin.Context, err error) {
	h.log.Error("failed to fetch files", "error", err, "repository", h.cfg.Repository())
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   publicMessage(err),
		"details": errorDetails,
	})
}

// publicMessage returns the message of the innermost known failure, without
// the crawl's wrapping context
func publicMessage(err error) string {
	var listingErr *tree.RemoteListingError
	if errors.As(err, &listingErr) {
		return listingErr.Error()
	}
	var shapeErr *tree.UnexpectedShapeError
	if errors.As(err, &shapeErr) {
		return shapeErr.Error()
	}
	return err.Error()
}
