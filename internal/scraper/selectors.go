package scraper

// Selector fallback chains for CarGurus pages, ordered by priority. The site
// has shipped several listing-card layouts; each list starts with the current
// markup and keeps the older variants so a markup change degrades instead of
// breaking. Centralising them makes future updates trivial.

// containerSelectors locate the repeated element representing one listing on
// a search-results page.
var containerSelectors = []string{
	".car-listing",
	`[data-testid="listing-tile"]`,
	".listing-item",
	`article[role="article"]`,
	".result-list-item",
	".cg-listingCard",
}

// linkSelectors locate the anchor carrying the listing's detail-page URL.
var linkSelectors = []string{
	`a[href*="/Cars/"]`,
	"a.cg-listingCard-link",
	"a",
}

// Per-field chains for the listing card.
var (
	titleSelectors = []string{
		"h4",
		".listing-title",
		`[data-testid="listing-title"]`,
		".cg-listingCard-title",
	}
	priceSelectors = []string{
		".price",
		`[data-testid="price"]`,
		".cg-dealFinder-priceAndMoPayment",
		".cg-listingCard-price",
	}
	mileageSelectors = []string{
		".mileage",
		`[data-testid="mileage"]`,
		".cg-listingCard-specs",
	}
	locationSelectors = []string{
		".dealer-location",
		".location",
		`[data-testid="location"]`,
		".cg-listingCard-dealerName",
	}
	yearMakeModelSelectors = []string{
		".make-model",
		`[data-testid="year-make-model"]`,
		".cg-listingCard-title",
	}
)

// vinAttribute is the data attribute CarGurus sets on listing containers.
const vinAttribute = "data-vin"

// Detail-page chains.
var (
	detailVINSelectors = []string{
		"[data-cg-vin]",
		".vin",
		`[data-testid="vin"]`,
	}
	detailDescriptionSelectors = []string{
		".description",
		".vehicle-description",
	}
	detailDealerSelectors = []string{
		".dealer-name",
		`[data-testid="dealer-name"]`,
	}
	detailPhoneSelectors = []string{
		".dealer-phone",
		`[data-testid="phone"]`,
	}
)

// featureSelector matches every feature/option entry on a detail page.
const featureSelector = ".feature-item, .option-item"

// suggestionSelector holds the site's "did you mean" text on no-results pages.
const suggestionSelector = ".search-suggestion"

// noResultsMarkers are phrases the site renders when a search has no matches.
var noResultsMarkers = []string{
	"No exact matches",
	"0 results",
	"no listings",
}
