package scraper

import (
	"log"

	"cargurusscraper/internal/models"
)

// enrichListings visits the detail pages of the first maxDetails listings
// that carry a detail URL and merges the extracted fields over each summary.
// Navigation is strictly sequential: the one render surface is reused for
// every page, which bounds peak resource usage, and maxDetails bounds total
// request latency.
//
// A failure on one page (timeout, navigation error) degrades that listing to
// its unmodified summary; it never aborts the pass.
func enrichListings(nav navigator, listings []models.ListingSummary, maxDetails int) []models.EnrichedListing {
	var enriched []models.EnrichedListing
	for _, listing := range listings {
		if len(enriched) >= maxDetails {
			break
		}
		if listing.DetailURL == "" {
			continue
		}

		doc, err := nav.open(listing.DetailURL)
		if err != nil {
			log.Printf("error getting details for %s: %v", listing.DetailURL, err)
			enriched = append(enriched, models.EnrichedListing{ListingSummary: listing})
			continue
		}

		enriched = append(enriched, models.Merge(listing, extractDetail(doc)))
	}
	return enriched
}

// extractDetail reads the detail-page fields. Missing fields stay empty.
func extractDetail(doc domNode) models.ListingDetail {
	return models.ListingDetail{
		VIN:         firstText(doc, detailVINSelectors),
		Description: firstText(doc, detailDescriptionSelectors),
		Features:    collectTexts(doc, featureSelector),
		Dealer:      firstText(doc, detailDealerSelectors),
		Phone:       firstText(doc, detailPhoneSelectors),
	}
}
