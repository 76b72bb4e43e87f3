package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NationwideRadius is the search radius CarGurus treats as a nationwide search.
const NationwideRadius = 3000

const (
	DefaultZipCode  = "63105"
	DefaultDistance = 500
)

// Distance is a search radius in miles, or the nationwide sentinel.
// It accepts either a JSON number or the string "nationwide".
type Distance struct {
	Miles      int
	Nationwide bool
}

func (d *Distance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.EqualFold(strings.TrimSpace(s), "nationwide") {
			*d = Distance{Nationwide: true}
			return nil
		}
		// Tolerate numeric strings like "500"
		if miles, convErr := strconv.Atoi(strings.TrimSpace(s)); convErr == nil {
			*d = Distance{Miles: miles}
			return nil
		}
		return fmt.Errorf("invalid distance %q", s)
	}

	var miles int
	if err := json.Unmarshal(data, &miles); err != nil {
		return fmt.Errorf("distance must be a number of miles or \"nationwide\"")
	}
	*d = Distance{Miles: miles}
	return nil
}

func (d Distance) MarshalJSON() ([]byte, error) {
	if d.Nationwide {
		return json.Marshal("nationwide")
	}
	return json.Marshal(d.Miles)
}

// Radius returns the value used in the search URL.
func (d Distance) Radius() int {
	if d.Nationwide {
		return NationwideRadius
	}
	return d.Miles
}

// Label returns the human-readable form used in responses.
func (d Distance) Label() string {
	if d.Nationwide {
		return "nationwide"
	}
	return fmt.Sprintf("%d miles", d.Miles)
}

// SearchRequest is the body of a POST /scrape call. All fields are optional;
// Normalize fills the defaults.
type SearchRequest struct {
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	YearRange   string   `json:"yearRange"`
	MaxPrice    int      `json:"maxPrice"`
	MaxMileage  int      `json:"maxMileage"`
	ZipCode     string   `json:"zipCode"`
	Distance    Distance `json:"distance"`
	SkipDetails bool     `json:"skipDetails"`
}

// Normalize applies the default zip code and distance when unset.
func (r *SearchRequest) Normalize() {
	if strings.TrimSpace(r.ZipCode) == "" {
		r.ZipCode = DefaultZipCode
	}
	if !r.Distance.Nationwide && r.Distance.Miles == 0 {
		r.Distance.Miles = DefaultDistance
	}
}

// Browse reports whether the request selects browse-mode URL construction
// (no make and no model given).
func (r *SearchRequest) Browse() bool {
	return strings.TrimSpace(r.Make) == "" && strings.TrimSpace(r.Model) == ""
}

// ListingSummary is one vehicle listing as extracted from a search-results
// page. Empty string means the field was not found.
type ListingSummary struct {
	Title         string `json:"title"`
	Price         string `json:"price"`
	Mileage       string `json:"mileage"`
	Location      string `json:"location"`
	YearMakeModel string `json:"yearMakeModel"`
	DetailURL     string `json:"detailUrl"`
	VIN           string `json:"vin"`
}

// Usable reports whether the summary carries enough data to be worth
// returning. Containers that match structurally but hold nothing are dropped.
func (l *ListingSummary) Usable() bool {
	return l.Title != "" || l.Price != "" || l.DetailURL != ""
}

// ListingDetail holds the extra fields scraped from a listing's own page.
type ListingDetail struct {
	VIN         string   `json:"vin,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Dealer      string   `json:"dealer,omitempty"`
	Phone       string   `json:"phone,omitempty"`
}

// EnrichedListing is a summary merged with its detail-page data. For a
// summary-only listing the detail fields stay empty and are omitted from
// the JSON form.
type EnrichedListing struct {
	ListingSummary
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Dealer      string   `json:"dealer,omitempty"`
	Phone       string   `json:"phone,omitempty"`
}

// Merge lays detail fields over the summary. The detail VIN wins only when
// non-empty, so a failed detail extraction never erases the summary VIN.
func Merge(summary ListingSummary, detail ListingDetail) EnrichedListing {
	enriched := EnrichedListing{
		ListingSummary: summary,
		Description:    detail.Description,
		Features:       detail.Features,
		Dealer:         detail.Dealer,
		Phone:          detail.Phone,
	}
	if detail.VIN != "" {
		enriched.VIN = detail.VIN
	}
	return enriched
}

// ScrapeResult is the envelope returned for every scrape, successful or not.
type ScrapeResult struct {
	Success    bool              `json:"success"`
	Count      int               `json:"count"`
	TotalFound int               `json:"totalFound,omitempty"`
	SearchURL  string            `json:"searchUrl"`
	Distance   string            `json:"distance,omitempty"`
	Message    string            `json:"message,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Note       string            `json:"note,omitempty"`
	Listings   []EnrichedListing `json:"listings"`
}
