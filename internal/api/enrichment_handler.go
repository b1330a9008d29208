package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/services"
)

// EnrichmentHandler exposes the EDGAR collection and announcement
// selection workflows over HTTP
type EnrichmentHandler struct {
	enrich   *services.EnrichmentService
	announce *services.AnnouncementService
	pipeline *services.Pipeline
}

// NewEnrichmentHandler creates a new enrichment handler
func NewEnrichmentHandler(enrich *services.EnrichmentService, announce *services.AnnouncementService, pipeline *services.Pipeline) *EnrichmentHandler {
	return &EnrichmentHandler{enrich: enrich, announce: announce, pipeline: pipeline}
}

// Enrich collects, parses, and scores the EDGAR filings for one event.
// Pass force=true to re-collect an already-processed event.
func (h *EnrichmentHandler) Enrich(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	result, err := h.enrich.EnrichEvent(c.Request.Context(), id, !force)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DecideAnnouncement runs the selector over an event's filings and
// persists the decision on the event
func (h *EnrichmentHandler) DecideAnnouncement(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	decision, err := h.announce.Apply(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// RunPipeline triggers one batch run over all events. Returns 409 when a
// run is already active.
func (h *EnrichmentHandler) RunPipeline(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	stats, err := h.pipeline.RunOnce(c.Request.Context(), force)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
