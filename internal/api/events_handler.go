package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/errors"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/services"
)

const dateLayout = "2006-01-02"

// EventsHandler handles split event CRUD and read endpoints
type EventsHandler struct {
	repos    *repository.Repositories
	announce *services.AnnouncementService
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(repos *repository.Repositories, announce *services.AnnouncementService) *EventsHandler {
	return &EventsHandler{repos: repos, announce: announce}
}

// CreateEventRequest represents a new split event
type CreateEventRequest struct {
	Ticker        string `json:"ticker" binding:"required"`
	CompanyName   string `json:"company_name"`
	ExecutionDate string `json:"execution_date"`
	RatioNum      *int   `json:"ratio_num"`
	RatioDen      *int   `json:"ratio_den"`
}

// Create registers a new split event
func (h *EventsHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := &models.SplitEvent{
		Ticker:      req.Ticker,
		CompanyName: req.CompanyName,
	}
	if req.ExecutionDate != "" {
		date, err := time.Parse(dateLayout, req.ExecutionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "execution_date must be YYYY-MM-DD"})
			return
		}
		event.ExecutionDate = &date
	}
	if req.RatioNum != nil && req.RatioDen != nil {
		ratio := models.Ratio{Num: *req.RatioNum, Den: *req.RatioDen}
		if !ratio.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ratio must satisfy den > num > 0"})
			return
		}
		event.Ratio = &ratio
	}

	if err := h.repos.Events.Create(event); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// List returns events, optionally filtered by ticker, with pagination
func (h *EventsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	events, err := h.repos.Events.List(repository.EventFilters{
		Ticker: c.Query("ticker"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if events == nil {
		events = []*models.SplitEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}

// ByTicker returns the full split history of one ticker, newest first
func (h *EventsHandler) ByTicker(c *gin.Context) {
	ticker := c.Param("ticker")
	events, err := h.repos.Events.GetByTicker(ticker)
	if err != nil {
		writeError(c, err)
		return
	}
	if events == nil {
		events = []*models.SplitEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "events": events})
}

// Get returns one event by id
func (h *EventsHandler) Get(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	event, err := h.repos.Events.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Filings returns the stored filings of an event
func (h *EventsHandler) Filings(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	if _, err := h.repos.Events.GetByID(id); err != nil {
		writeError(c, err)
		return
	}
	filings, err := h.repos.Filings.GetByEvent(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if filings == nil {
		filings = []*models.Filing{}
	}
	c.JSON(http.StatusOK, gin.H{"filings": filings})
}

// Announcement computes the announcement decision for an event without
// persisting it
func (h *EventsHandler) Announcement(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	decision, err := h.announce.Decide(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps an AppError code to an HTTP status
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsCode(err, apperrors.ErrCodeNotFound):
		status = http.StatusNotFound
	case apperrors.IsCode(err, apperrors.ErrCodeInvalidInput):
		status = http.StatusBadRequest
	case apperrors.IsCode(err, apperrors.ErrCodeUnauthorized):
		status = http.StatusUnauthorized
	case apperrors.IsCode(err, apperrors.ErrCodeServiceError):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
