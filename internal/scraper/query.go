package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"cargurusscraper/internal/models"
)

// CarGurus endpoints. The parameter names and paths are an external contract
// with the site and must match exactly.
const (
	baseURL           = "https://www.cargurus.com"
	searchResultsPath = "/Cars/searchresults.action"
	inventoryPath     = "/Cars/inventorylisting/viewDetailsFilterViewInventoryListing.action"

	// Fixed browse-mode parameters: cheapest first, include negotiable
	// listings, and the source-context tag CarGurus expects.
	browseModeSuffix = "&showNegotiable=true&sortDir=ASC&sourceContext=carGurusHomePageModel&sortType=PRICE"
)

// BuildSearchURL turns a search request into the CarGurus URL to navigate to.
// With a make or model it targets the keyword-search endpoint; without either
// it targets the inventory-browse endpoint. Deterministic; unset optional
// fields simply emit no parameter.
func BuildSearchURL(req *models.SearchRequest) string {
	if req.Browse() {
		return buildBrowseURL(req)
	}
	return buildQueryURL(req)
}

func buildQueryURL(req *models.SearchRequest) string {
	var terms []string
	for _, t := range []string{req.Make, req.Model} {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	query := encodeQueryTerm(strings.Join(terms, " "))

	u := fmt.Sprintf("%s%s?zip=%s&searchDistance=%d&query=%s",
		baseURL, searchResultsPath, url.QueryEscape(req.ZipCode), req.Distance.Radius(), query)
	u += filterParams(req)
	return u
}

func buildBrowseURL(req *models.SearchRequest) string {
	u := fmt.Sprintf("%s%s?zip=%s", baseURL, inventoryPath, url.QueryEscape(req.ZipCode))
	u += filterParams(req)
	u += fmt.Sprintf("&distance=%d", req.Distance.Radius())
	u += browseModeSuffix
	return u
}

// filterParams renders the optional price/mileage/year filters shared by both
// endpoint modes.
func filterParams(req *models.SearchRequest) string {
	var b strings.Builder
	if req.MaxPrice > 0 {
		fmt.Fprintf(&b, "&maxPrice=%d", req.MaxPrice)
	}
	if req.MaxMileage > 0 {
		fmt.Fprintf(&b, "&maxMileage=%d", req.MaxMileage)
	}

	if minYear, maxYear, ok := splitYearRange(req.YearRange); ok {
		fmt.Fprintf(&b, "&minYear=%s&maxYear=%s", minYear, maxYear)
	}
	return b.String()
}

// splitYearRange parses "YYYY" or "YYYY-YYYY". A single year maps both bounds
// to that year. Any other shape is ignored, not rejected.
func splitYearRange(yearRange string) (minYear, maxYear string, ok bool) {
	yearRange = strings.TrimSpace(yearRange)
	if yearRange == "" {
		return "", "", false
	}

	years := strings.Split(yearRange, "-")
	switch len(years) {
	case 1:
		return years[0], years[0], true
	case 2:
		return years[0], years[1], true
	default:
		return "", "", false
	}
}

// encodeQueryTerm percent-encodes a search term the way browsers do, with
// spaces as %20 rather than +.
func encodeQueryTerm(term string) string {
	return strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
}
