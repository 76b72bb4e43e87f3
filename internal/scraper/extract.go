package scraper

import (
	"log"
	"strings"

	"cargurusscraper/internal/models"
)

// firstText tries each selector strategy in order and returns the trimmed
// text of the first one matching a node with non-empty text. The order
// encodes a priority among known page layouts; no match at all is normal and
// yields "".
func firstText(node domNode, selectors []string) string {
	for _, selector := range selectors {
		match, ok := node.find(selector)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(match.text()); text != "" {
			return text
		}
	}
	return ""
}

// collectTexts gathers the trimmed non-empty texts of every node matching the
// selector, in document order.
func collectTexts(node domNode, selector string) []string {
	var texts []string
	for _, match := range node.findAll(selector) {
		if text := strings.TrimSpace(match.text()); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

// collectListings finds the listing containers on a rendered results page and
// maps up to maxListings of them to summaries. An empty result means no
// container selector matched anything, or every matched container was
// discarded as unusable.
func collectListings(doc domNode, maxListings int) []models.ListingSummary {
	containers := findContainers(doc)
	if len(containers) == 0 {
		log.Println("no listing containers matched any selector")
		return nil
	}

	var listings []models.ListingSummary
	for i, container := range containers {
		if i >= maxListings {
			break
		}

		listing := extractSummary(container)
		if listing.Usable() {
			listings = append(listings, listing)
		}
	}
	return listings
}

// findContainers tries the container selector chain and returns the elements
// of the first strategy that matches at all.
func findContainers(doc domNode) []domNode {
	for _, selector := range containerSelectors {
		if containers := doc.findAll(selector); len(containers) > 0 {
			log.Printf("found %d listings with selector %s", len(containers), selector)
			return containers
		}
	}
	return nil
}

// extractSummary reads one listing card. Fields that cannot be located stay
// empty.
func extractSummary(container domNode) models.ListingSummary {
	listing := models.ListingSummary{
		Title:         firstText(container, titleSelectors),
		Price:         firstText(container, priceSelectors),
		Mileage:       firstText(container, mileageSelectors),
		Location:      firstText(container, locationSelectors),
		YearMakeModel: firstText(container, yearMakeModelSelectors),
		DetailURL:     extractDetailURL(container),
		VIN:           container.attr(vinAttribute),
	}

	if listing.Title == "" {
		applyTextFallback(container, &listing)
	}
	return listing
}

// extractDetailURL walks the anchor selector chain and returns the first
// href that resolves to an absolute URL.
func extractDetailURL(container domNode) string {
	for _, selector := range linkSelectors {
		anchor, ok := container.find(selector)
		if !ok {
			continue
		}
		if href := resolveHref(anchor.attr("href")); href != "" {
			return href
		}
	}
	return ""
}

// applyTextFallback is the secondary extraction pass for cards whose title
// selectors all missed: the card's first text line becomes the title, and the
// second becomes the price when it looks like one. Logged because firing here
// usually means the container markup drifted.
func applyTextFallback(container domNode, listing *models.ListingSummary) {
	lines := nonEmptyLines(container.text())
	if len(lines) == 0 {
		return
	}

	log.Printf("title selectors missed, falling back to card text (first line %q)", lines[0])
	listing.Title = lines[0]
	if len(lines) > 1 && strings.Contains(lines[1], "$") {
		listing.Price = lines[1]
	}
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// detectNoResults checks whether a page with zero collected listings is an
// explicit no-results page, and returns any on-page suggestion text. This is
// a successful outcome, distinct from a page whose markup we failed to read.
func detectNoResults(doc domNode) (noResults bool, suggestion string) {
	body := doc.text()
	for _, marker := range noResultsMarkers {
		if strings.Contains(body, marker) {
			return true, firstText(doc, []string{suggestionSelector})
		}
	}
	return false, ""
}
