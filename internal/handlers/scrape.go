package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cargurusscraper/internal/history"
	"cargurusscraper/internal/models"
	"cargurusscraper/internal/scraper"
	"cargurusscraper/internal/util"
	"cargurusscraper/internal/validation"
)

// Runner is the scrape pipeline the handler drives. It is an interface so
// handler tests can run without a browser.
type Runner interface {
	Scrape(req *models.SearchRequest) (*models.ScrapeResult, error)
}

type Handler struct {
	runner  Runner
	history *history.Store
}

// New creates the HTTP handler. The history store is optional; without it no
// audit records are written.
func New(runner Runner, store *history.Store) *Handler {
	return &Handler{runner: runner, history: store}
}

// Health godoc
// @Summary Liveness check
// @Description Reports that the scraper service is up, with its environment and port.
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *Handler) Health(c *gin.Context) {
	environment := os.Getenv("GIN_MODE")
	if environment == "" {
		environment = "debug"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "CarGurus scraper is running",
		"environment": environment,
		"port":        port,
	})
}

// Scrape godoc
// @Summary Scrape CarGurus search results
// @Description Builds a CarGurus search from the request, renders it in a headless browser and returns up to 20 listing summaries, the first 5 enriched from their detail pages unless skipDetails is set.
// @Tags scrape
// @Accept json
// @Produce json
// @Param request body models.SearchRequest true "Search parameters; all fields optional"
// @Success 200 {object} models.ScrapeResult
// @Failure 400 {object} map[string]interface{} "Invalid request body or parameters"
// @Failure 429 {object} map[string]string "Rate limited"
// @Failure 500 {object} map[string]interface{} "Browser launch or primary navigation failure"
// @Router /scrape [post]
func (h *Handler) Scrape(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SafeErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.Normalize()
	if err := validation.ValidateSearchRequest(&req); err != nil {
		util.SafeErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	start := time.Now()
	result, err := h.runner.Scrape(&req)
	h.recordScrape(&req, result, err, time.Since(start))

	if err != nil {
		log.Printf("scraping error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     err.Error(),
			"details":   "Check server logs for more information",
			"searchUrl": scraper.BuildSearchURL(&req),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// History godoc
// @Summary Recent scrape audit records
// @Description Returns operational metadata about recent scrapes (no listing data). Admin key required.
// @Tags service
// @Produce json
// @Param limit query int false "Maximum records to return" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Admin access required"
// @Router /api/history [get]
func (h *Handler) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "count": 0, "history": []*history.Entry{}})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	entries, err := h.history.Recent(limit)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load history", err)
		return
	}
	if entries == nil {
		entries = []*history.Entry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(entries),
		"history": entries,
	})
}

// recordScrape writes the audit row for one scrape. Failures are logged and
// never surface to the caller.
func (h *Handler) recordScrape(req *models.SearchRequest, result *models.ScrapeResult, scrapeErr error, elapsed time.Duration) {
	if h.history == nil {
		return
	}

	entry := &history.Entry{
		Make:      req.Make,
		Model:     req.Model,
		ZipCode:   req.ZipCode,
		Distance:  req.Distance.Label(),
		SearchURL: scraper.BuildSearchURL(req),
		Success:   scrapeErr == nil,
		Duration:  elapsed,
	}
	if result != nil {
		entry.Count = result.Count
		entry.TotalFound = result.TotalFound
	}

	if err := h.history.Record(entry); err != nil {
		log.Printf("failed to record scrape history: %v", err)
	}
}
