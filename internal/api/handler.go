package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pfrederiksen/conf-tracker/internal/conference"
	"github.com/pfrederiksen/conf-tracker/internal/logger"
	"github.com/pfrederiksen/conf-tracker/internal/pipeline"
)

// FragmentFetcher supplies the raw fragment batch for one scrape run.
type FragmentFetcher interface {
	Fragments(ctx context.Context, pageURL, className string) ([]string, error)
}

// Handler handles scrape requests
type Handler struct {
	fetcher FragmentFetcher
	runner  *pipeline.Runner
}

// NewHandler creates a new scrape handler
func NewHandler(fetcher FragmentFetcher, runner *pipeline.Runner) *Handler {
	return &Handler{
		fetcher: fetcher,
		runner:  runner,
	}
}

// Register attaches the handler's routes to the router
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	r.GET("/api/scrape", h.Scrape)
}

// ScrapeResponse is the payload returned for a successful run
type ScrapeResponse struct {
	Success bool                   `json:"success"`
	Results pipeline.Report        `json:"results"`
	Parsed  []conference.Candidate `json:"parsed"`
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Scrape fetches the listing page named by the url and className query
// parameters, runs the pipeline, and returns the report plus the raw
// candidate list. Partial data problems never fail the request; only a
// failure to obtain the fragment batch at all maps to a server error.
func (h *Handler) Scrape(c *gin.Context) {
	pageURL := c.Query("url")
	className := c.Query("className")

	if pageURL == "" || className == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and className are required"})
		return
	}

	fragments, err := h.fetcher.Fragments(c.Request.Context(), pageURL, className)
	if err != nil {
		logger.Error("fetching fragments failed", logger.Fields{
			"url":        pageURL,
			"class_name": className,
		}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scrape failed"})
		return
	}

	result := h.runner.Run(c.Request.Context(), fragments)

	logger.Info("scrape run finished", logger.Fields{
		"url":     pageURL,
		"created": result.Created,
		"updated": result.Updated,
		"errors":  len(result.Errors),
	})

	c.JSON(http.StatusOK, ScrapeResponse{
		Success: true,
		Results: result.Report,
		Parsed:  result.Candidates,
	})
}
