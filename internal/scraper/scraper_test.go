package scraper

import (
	"encoding/json"
	"strings"
	"testing"

	"cargurusscraper/internal/models"
)

func usableCard(title string) *fakeNode {
	return &fakeNode{kids: map[string][]*fakeNode{
		"h4":                {textNode(title)},
		`a[href*="/Cars/"]`: {anchor("/Cars/link/" + title)},
	}}
}

func TestAssembleSkipDetailsShortCircuits(t *testing.T) {
	doc := resultsPage(usableCard("one"), usableCard("two"), usableCard("three"))
	nav := &fakeNavigator{}
	req := newRequest(func(r *models.SearchRequest) {
		r.Make = "Honda"
		r.SkipDetails = true
	})

	result := New().assemble(doc, nav, req, "https://example.test/search")

	if len(nav.opened) != 0 {
		t.Fatalf("expected no detail navigation with skipDetails, got %d", len(nav.opened))
	}
	if !result.Success || result.Count != 3 {
		t.Fatalf("expected success with count 3, got %+v", result)
	}
	if result.TotalFound != 0 {
		t.Fatalf("expected no totalFound in summaries-only response, got %d", result.TotalFound)
	}

	// Summary-only listings must not expose detail-only fields.
	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{"dealer", "phone", "features", "description"} {
		if strings.Contains(string(payload), `"`+field+`"`) {
			t.Fatalf("expected field %q to be omitted, got %s", field, payload)
		}
	}
}

func TestAssembleEnrichedResponseCounts(t *testing.T) {
	var cards []*fakeNode
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		cards = append(cards, usableCard(title))
	}
	doc := resultsPage(cards...)
	nav := &fakeNavigator{}
	req := newRequest(func(r *models.SearchRequest) { r.Make = "Honda" })

	result := New().assemble(doc, nav, req, "https://example.test/search")

	if result.Count != 5 {
		t.Fatalf("expected count of 5 enriched listings, got %d", result.Count)
	}
	if result.TotalFound != 7 {
		t.Fatalf("expected totalFound 7, got %d", result.TotalFound)
	}
	if result.Note == "" {
		t.Fatal("expected the similar-vehicles note on a normal response")
	}
}

func TestAssembleNoResultsSignal(t *testing.T) {
	doc := &fakeNode{
		textVal: "No exact matches found for your search",
		kids: map[string][]*fakeNode{
			".search-suggestion": {textNode("Try a wider radius")},
		},
	}
	nav := &fakeNavigator{}
	req := newRequest(func(r *models.SearchRequest) {
		r.Make = "Alfa Romeo"
		r.Model = "Giulia"
	})

	result := New().assemble(doc, nav, req, "https://example.test/search")

	if !result.Success || result.Count != 0 {
		t.Fatalf("expected success with count 0, got %+v", result)
	}
	if len(result.Listings) != 0 {
		t.Fatalf("expected empty listings, got %d", len(result.Listings))
	}
	if !strings.Contains(result.Message, "Alfa Romeo Giulia") {
		t.Fatalf("expected advisory message to name the requested vehicle, got %q", result.Message)
	}
	if result.Suggestion != "Try a wider radius" {
		t.Fatalf("expected on-page suggestion, got %q", result.Suggestion)
	}
	if len(nav.opened) != 0 {
		t.Fatal("expected no detail navigation on a no-results page")
	}
}

func TestAssembleEmptyWithoutSignalFallsThrough(t *testing.T) {
	doc := textNode("some unrecognised page layout")
	nav := &fakeNavigator{}
	req := newRequest(func(r *models.SearchRequest) { r.Make = "Honda" })

	result := New().assemble(doc, nav, req, "https://example.test/search")

	if !result.Success || result.Count != 0 {
		t.Fatalf("expected normal assembly with count 0, got %+v", result)
	}
	if result.Message != "" {
		t.Fatalf("expected no advisory message without the explicit signal, got %q", result.Message)
	}
	if result.Listings == nil {
		t.Fatal("expected a non-nil empty listings slice")
	}
}

func TestAssembleAlwaysIncludesSearchURLAndDistance(t *testing.T) {
	cases := []struct {
		name   string
		doc    *fakeNode
		mutate func(*models.SearchRequest)
		want   string
	}{
		{"noResults", textNode("0 results"), func(r *models.SearchRequest) {
			r.Make = "Honda"
			r.Distance = models.Distance{Nationwide: true}
		}, "nationwide"},
		{"skipDetails", resultsPage(usableCard("one")), func(r *models.SearchRequest) {
			r.SkipDetails = true
			r.Distance = models.Distance{Miles: 250}
		}, "250 miles"},
		{"enriched", resultsPage(usableCard("one")), func(r *models.SearchRequest) {
			r.Make = "Honda"
		}, "500 miles"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := newRequest(tc.mutate)
			result := New().assemble(tc.doc, &fakeNavigator{}, req, "https://example.test/search")
			if result.SearchURL != "https://example.test/search" {
				t.Fatalf("expected searchUrl in every response, got %q", result.SearchURL)
			}
			if result.Distance != tc.want {
				t.Fatalf("expected distance label %q, got %q", tc.want, result.Distance)
			}
		})
	}
}

func TestNewWithConfigClampsDetailCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDetails = 50
	s := NewWithConfig(cfg)
	if s.cfg.MaxDetails != maxDetailLimit {
		t.Fatalf("expected detail cap clamped to %d, got %d", maxDetailLimit, s.cfg.MaxDetails)
	}

	cfg.MaxListings = 0
	if s = NewWithConfig(cfg); s.cfg.MaxListings != 1 {
		t.Fatalf("expected listing cap floored at 1, got %d", s.cfg.MaxListings)
	}
}
