package validation

import (
	"fmt"
	"regexp"

	"cargurusscraper/internal/models"
)

var zipCodePattern = regexp.MustCompile(`^\d{5}$`)

// ValidateZipCode validates a US ZIP code (5 digits).
func ValidateZipCode(zipCode string) error {
	if !zipCodePattern.MatchString(zipCode) {
		return fmt.Errorf("zip code must be exactly 5 digits")
	}
	return nil
}

// ValidateSearchRequest checks a normalized scrape request. The year range is
// deliberately not validated here: a malformed range is ignored by the URL
// builder, not rejected.
func ValidateSearchRequest(req *models.SearchRequest) error {
	if err := ValidateZipCode(req.ZipCode); err != nil {
		return err
	}
	if req.MaxPrice < 0 {
		return fmt.Errorf("maxPrice must be a positive integer")
	}
	if req.MaxMileage < 0 {
		return fmt.Errorf("maxMileage must be a positive integer")
	}
	if !req.Distance.Nationwide && req.Distance.Miles <= 0 {
		return fmt.Errorf("distance must be a positive number of miles or \"nationwide\"")
	}
	return nil
}
