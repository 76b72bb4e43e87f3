package scraper

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-rod/stealth"

	"cargurusscraper/internal/models"
)

// similarVehiclesNote is the advisory attached to normal responses.
const similarVehiclesNote = "CarGurus automatically includes similar vehicles when exact matches are limited"

// maxDetailLimit caps how many detail pages a single request may visit.
const maxDetailLimit = 5

// Config parameterizes one scrape pipeline: listing cap, detail-page cap and
// the navigation timing bounds.
type Config struct {
	// MaxListings caps how many containers are read from the results page.
	MaxListings int
	// MaxDetails caps detail-page enrichment; clamped to maxDetailLimit.
	MaxDetails int

	NavTimeout    time.Duration
	SettleDelay   time.Duration
	DetailTimeout time.Duration
	DetailSettle  time.Duration
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		MaxListings:   20,
		MaxDetails:    maxDetailLimit,
		NavTimeout:    30 * time.Second,
		SettleDelay:   3 * time.Second,
		DetailTimeout: 20 * time.Second,
		DetailSettle:  2 * time.Second,
	}
}

// Scraper runs the CarGurus extraction pipeline. Each Scrape call owns an
// independent browser, so a Scraper is safe for concurrent use.
type Scraper struct {
	cfg Config
}

// New creates a scraper with the default configuration.
func New() *Scraper {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a scraper with explicit pipeline settings.
func NewWithConfig(cfg Config) *Scraper {
	if cfg.MaxListings < 1 {
		cfg.MaxListings = 1
	}
	if cfg.MaxDetails < 0 {
		cfg.MaxDetails = 0
	}
	if cfg.MaxDetails > maxDetailLimit {
		cfg.MaxDetails = maxDetailLimit
	}
	return &Scraper{cfg: cfg}
}

// Scrape drives a headless browser through the search results for req and
// returns the assembled result. The request must be normalized. A launch
// failure or a timeout on the primary navigation is fatal and returns an
// error; the browser is closed on every exit path.
func (s *Scraper) Scrape(req *models.SearchRequest) (*models.ScrapeResult, error) {
	searchURL := BuildSearchURL(req)
	log.Printf("navigating to: %s", searchURL)
	log.Printf("search: %s %s | distance: %s", orAny(req.Make), req.Model, req.Distance.Label())

	browser, err := launchBrowser()
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	bounded := page.Timeout(s.cfg.NavTimeout)
	if err := bounded.Navigate(searchURL); err != nil {
		return nil, fmt.Errorf("search navigation failed: %w", err)
	}
	if err := bounded.WaitLoad(); err != nil {
		return nil, fmt.Errorf("search page load failed: %w", err)
	}

	// Settle wait for listings to render
	time.Sleep(s.cfg.SettleDelay)

	nav := &rodNavigator{
		page:    page,
		timeout: s.cfg.DetailTimeout,
		settle:  s.cfg.DetailSettle,
	}
	return s.assemble(pageNode{page: page}, nav, req, searchURL), nil
}

// assemble applies the result decision table: explicit no-results signal,
// summaries-only when details are skipped, or the enriched response.
func (s *Scraper) assemble(doc domNode, nav navigator, req *models.SearchRequest, searchURL string) *models.ScrapeResult {
	listings := collectListings(doc, s.cfg.MaxListings)
	log.Printf("collected %d listings", len(listings))

	if len(listings) == 0 {
		if noResults, suggestion := detectNoResults(doc); noResults {
			return &models.ScrapeResult{
				Success:    true,
				Count:      0,
				SearchURL:  searchURL,
				Distance:   req.Distance.Label(),
				Message:    noMatchMessage(req),
				Suggestion: suggestion,
				Listings:   []models.EnrichedListing{},
			}
		}
	}

	if req.SkipDetails {
		return &models.ScrapeResult{
			Success:   true,
			Count:     len(listings),
			SearchURL: searchURL,
			Distance:  req.Distance.Label(),
			Note:      similarVehiclesNote,
			Listings:  asEnriched(listings),
		}
	}

	enriched := enrichListings(nav, listings, s.cfg.MaxDetails)
	if enriched == nil {
		enriched = []models.EnrichedListing{}
	}
	return &models.ScrapeResult{
		Success:    true,
		Count:      len(enriched),
		TotalFound: len(listings),
		SearchURL:  searchURL,
		Distance:   req.Distance.Label(),
		Note:       similarVehiclesNote,
		Listings:   enriched,
	}
}

// noMatchMessage names the requested vehicle in the no-results advisory.
func noMatchMessage(req *models.SearchRequest) string {
	requested := strings.TrimSpace(strings.Join([]string{req.Make, req.Model}, " "))
	if requested == "" {
		requested = "your search"
	}
	return fmt.Sprintf("No exact matches found for %s. CarGurus may show similar vehicles if you broaden your search criteria.", requested)
}

// asEnriched wraps summaries without visiting any detail page.
func asEnriched(listings []models.ListingSummary) []models.EnrichedListing {
	enriched := make([]models.EnrichedListing, 0, len(listings))
	for _, listing := range listings {
		enriched = append(enriched, models.EnrichedListing{ListingSummary: listing})
	}
	return enriched
}

func orAny(vehicleMake string) string {
	if strings.TrimSpace(vehicleMake) == "" {
		return "Any"
	}
	return vehicleMake
}
