package handlers

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	maxStringLength      = 255
	maxDescriptionLength = 2000
	maxImageURLLength    = 2048
	minRating            = 0.0
	maxRating            = 10.0
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// validate collects errors and returns a *ValidationError if any exist.
func validate(checks ...func() string) error {
	var errs []string
	for _, check := range checks {
		if msg := check(); msg != "" {
			errs = append(errs, msg)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func requireNonEmpty(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", field)
	}
	return ""
}

func checkMaxLength(field, value string, max int) string {
	if len(value) > max {
		return fmt.Sprintf("%s exceeds maximum length of %d", field, max)
	}
	return ""
}

func checkRange(field string, value, min, max float64) string {
	if value < min || value > max {
		return fmt.Sprintf("%s must be between %g and %g", field, min, max)
	}
	return ""
}

// checkImageURL accepts an empty value or an absolute http(s) URL.
func checkImageURL(field, value string) string {
	if value == "" {
		return ""
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Sprintf("%s must be an absolute http or https URL", field)
	}
	return ""
}

// validateMovieRequest validates a create request. Name, director and
// description are required; the other fields are checked when present.
func validateMovieRequest(req *MovieRequest) error {
	return validate(
		func() string { return requireNonEmpty("name", req.Name) },
		func() string { return checkMaxLength("name", req.Name, maxStringLength) },
		func() string { return requireNonEmpty("director", req.Director) },
		func() string { return checkMaxLength("director", req.Director, maxStringLength) },
		func() string { return checkMaxLength("genres", req.Genres, maxStringLength) },
		func() string { return checkMaxLength("actors", req.Actors, maxStringLength) },
		func() string { return checkMaxLength("released", req.Released, maxStringLength) },
		func() string { return requireNonEmpty("description", req.Description) },
		func() string { return checkMaxLength("description", req.Description, maxDescriptionLength) },
		func() string { return checkRange("imdb_rating", req.IMDbRating, minRating, maxRating) },
		func() string { return checkMaxLength("image_url", req.ImageURL, maxImageURLLength) },
		func() string { return checkImageURL("image_url", req.ImageURL) },
	)
}

// validateMovieUpdate validates only the fields present in a partial update.
// Required fields may be changed but not blanked.
func validateMovieUpdate(req *MovieUpdateRequest) error {
	var checks []func() string

	required := func(field string, value *string, max int) {
		if value == nil {
			return
		}
		checks = append(checks,
			func() string { return requireNonEmpty(field, *value) },
			func() string { return checkMaxLength(field, *value, max) },
		)
	}
	optional := func(field string, value *string, max int) {
		if value == nil {
			return
		}
		checks = append(checks, func() string { return checkMaxLength(field, *value, max) })
	}

	required("name", req.Name, maxStringLength)
	required("director", req.Director, maxStringLength)
	required("description", req.Description, maxDescriptionLength)
	optional("genres", req.Genres, maxStringLength)
	optional("actors", req.Actors, maxStringLength)
	optional("released", req.Released, maxStringLength)
	optional("image_url", req.ImageURL, maxImageURLLength)

	if req.ImageURL != nil {
		checks = append(checks, func() string { return checkImageURL("image_url", *req.ImageURL) })
	}
	if req.IMDbRating != nil {
		checks = append(checks, func() string {
			return checkRange("imdb_rating", *req.IMDbRating, minRating, maxRating)
		})
	}

	return validate(checks...)
}

// ValidateMovieID rejects blank path identifiers.
func ValidateMovieID(id string) error {
	return validate(
		func() string { return requireNonEmpty("movie_id", id) },
		func() string { return checkMaxLength("movie_id", id, maxStringLength) },
	)
}
