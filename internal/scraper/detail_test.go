package scraper

import (
	"errors"
	"fmt"
	"testing"

	"cargurusscraper/internal/models"
)

// fakeNavigator serves canned detail pages and records every navigation.
type fakeNavigator struct {
	pages  map[string]domNode
	fail   map[string]bool
	opened []string
}

func (n *fakeNavigator) open(url string) (domNode, error) {
	n.opened = append(n.opened, url)
	if n.fail[url] {
		return nil, errors.New("navigation timeout")
	}
	if page, ok := n.pages[url]; ok {
		return page, nil
	}
	return &fakeNode{}, nil
}

func detailPage(vin, dealer string, features ...string) *fakeNode {
	var featureNodes []*fakeNode
	for _, feature := range features {
		featureNodes = append(featureNodes, textNode(feature))
	}
	return &fakeNode{kids: map[string][]*fakeNode{
		"[data-cg-vin]":               {textNode(vin)},
		".description":                {textNode("One owner, clean history")},
		".dealer-name":                {textNode(dealer)},
		".dealer-phone":               {textNode("(314) 555-0142")},
		".feature-item, .option-item": featureNodes,
	}}
}

func summaries(n int) []models.ListingSummary {
	var listings []models.ListingSummary
	for i := 0; i < n; i++ {
		listings = append(listings, models.ListingSummary{
			Title:     fmt.Sprintf("car %d", i+1),
			DetailURL: fmt.Sprintf("https://www.cargurus.com/Cars/link/%d", i+1),
		})
	}
	return listings
}

func TestEnrichListingsExtractsDetailFields(t *testing.T) {
	listings := summaries(1)
	nav := &fakeNavigator{pages: map[string]domNode{
		listings[0].DetailURL: detailPage("VIN0001", "Gateway Motors", "Sunroof", "Heated seats"),
	}}

	enriched := enrichListings(nav, listings, 5)
	if len(enriched) != 1 {
		t.Fatalf("expected 1 enriched listing, got %d", len(enriched))
	}

	got := enriched[0]
	if got.VIN != "VIN0001" || got.Dealer != "Gateway Motors" || got.Phone != "(314) 555-0142" {
		t.Fatalf("unexpected detail fields: %+v", got)
	}
	if got.Description != "One owner, clean history" {
		t.Fatalf("unexpected description %q", got.Description)
	}
	if len(got.Features) != 2 || got.Features[0] != "Sunroof" || got.Features[1] != "Heated seats" {
		t.Fatalf("unexpected features %v", got.Features)
	}
	if got.Title != "car 1" {
		t.Fatalf("summary fields should survive the merge, got %+v", got)
	}
}

func TestEnrichListingsCapsAtMaxDetails(t *testing.T) {
	listings := summaries(8)
	nav := &fakeNavigator{}

	enriched := enrichListings(nav, listings, 5)
	if len(enriched) != 5 {
		t.Fatalf("expected 5 enriched listings, got %d", len(enriched))
	}
	if len(nav.opened) != 5 {
		t.Fatalf("expected exactly 5 detail navigations, got %d", len(nav.opened))
	}
}

func TestEnrichListingsFewerEligibleThanCap(t *testing.T) {
	listings := summaries(2)
	nav := &fakeNavigator{}

	if enriched := enrichListings(nav, listings, 5); len(enriched) != 2 {
		t.Fatalf("expected min(cap, eligible) = 2, got %d", len(enriched))
	}
}

func TestEnrichListingsIsolatesSingleFailure(t *testing.T) {
	listings := summaries(5)
	nav := &fakeNavigator{
		pages: make(map[string]domNode),
		fail:  map[string]bool{listings[1].DetailURL: true},
	}
	for i, listing := range listings {
		if i != 1 {
			nav.pages[listing.DetailURL] = detailPage(fmt.Sprintf("VIN%04d", i+1), "Gateway Motors")
		}
	}

	enriched := enrichListings(nav, listings, 5)
	if len(enriched) != 5 {
		t.Fatalf("expected all 5 listings back, got %d", len(enriched))
	}

	for i, listing := range enriched {
		if i == 1 {
			if listing.VIN != "" || listing.Dealer != "" {
				t.Fatalf("expected item 2 to degrade to summary-only, got %+v", listing)
			}
			if listing.Title != "car 2" {
				t.Fatalf("expected item 2 summary to be unmodified, got %+v", listing)
			}
			continue
		}
		if listing.VIN == "" {
			t.Fatalf("expected item %d to be enriched, got %+v", i+1, listing)
		}
	}
}

func TestEnrichListingsSkipsMissingDetailURL(t *testing.T) {
	listings := []models.ListingSummary{
		{Title: "no link"},
		{Title: "linked", DetailURL: "https://www.cargurus.com/Cars/link/1"},
	}
	nav := &fakeNavigator{}

	enriched := enrichListings(nav, listings, 5)
	if len(enriched) != 1 || enriched[0].Title != "linked" {
		t.Fatalf("expected only the linked listing, got %+v", enriched)
	}
	if len(nav.opened) != 1 {
		t.Fatalf("expected 1 navigation, got %d", len(nav.opened))
	}
}

func TestEnrichListingsKeepsSummaryVINWhenDetailEmpty(t *testing.T) {
	listings := []models.ListingSummary{{
		Title:     "car",
		VIN:       "SUMMARYVIN",
		DetailURL: "https://www.cargurus.com/Cars/link/1",
	}}
	nav := &fakeNavigator{pages: map[string]domNode{
		listings[0].DetailURL: detailPage("", "Gateway Motors"),
	}}

	enriched := enrichListings(nav, listings, 5)
	if enriched[0].VIN != "SUMMARYVIN" {
		t.Fatalf("expected summary VIN to survive an empty detail VIN, got %q", enriched[0].VIN)
	}
}
