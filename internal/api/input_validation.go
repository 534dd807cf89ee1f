package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

type pageOptions struct {
	Limit  int
	Offset int
}

func parsePageOptions(c *fiber.Ctx) (pageOptions, error) {
	options := pageOptions{}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageSize {
			return pageOptions{}, errors.New("limit must be between 1 and 100")
		}
		options.Limit = limit
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return pageOptions{}, errors.New("offset must be 0 or greater")
		}
		options.Offset = offset
	}
	return options, nil
}

// parseVisitTimestamp accepts RFC 3339, the datetime-local format the web
// form submits, and a bare date.
func parseVisitTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New("visitedAt is required")
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02T15:04", value); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, errors.New("invalid visitedAt date")
}

// parseRecordedOn keeps only the calendar date of the submitted value.
func parseRecordedOn(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New("recordedOn is required")
	}
	if index := strings.IndexByte(value, 'T'); index > 0 {
		value = value[:index]
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errors.New("invalid recordedOn date")
	}
	return parsed.UTC(), nil
}

func parseMonthYearQuery(c *fiber.Ctx) (int, int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("month must be between 1 and 12")
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, errors.New("year must be between 2000 and 2100")
	}
	return month, year, nil
}

// parseOptionalMonthYearQuery returns nil values when neither parameter is
// present; supplying only one of the pair is an error.
func parseOptionalMonthYearQuery(c *fiber.Ctx) (int, int, bool, error) {
	hasMonth := strings.TrimSpace(c.Query("month")) != ""
	hasYear := strings.TrimSpace(c.Query("year")) != ""
	if !hasMonth && !hasYear {
		return 0, 0, false, nil
	}
	if hasMonth != hasYear {
		return 0, 0, false, errors.New("month and year must be supplied together")
	}
	month, year, err := parseMonthYearQuery(c)
	if err != nil {
		return 0, 0, false, err
	}
	return month, year, true, nil
}

func parseServiceYearQuery(c *fiber.Ctx, required bool) (int, error) {
	raw := strings.TrimSpace(c.Query("serviceYear"))
	if raw == "" {
		if required {
			return 0, errors.New("serviceYear is required")
		}
		return 0, nil
	}
	serviceYear, err := strconv.Atoi(raw)
	if err != nil || serviceYear < 2000 || serviceYear > 2100 {
		return 0, errors.New("serviceYear must be between 2000 and 2100")
	}
	return serviceYear, nil
}

func parseTypeFilters(c *fiber.Ctx) []string {
	rawValues := c.Context().QueryArgs().PeekMulti("type")
	types := make([]string, 0, len(rawValues))
	for _, raw := range rawValues {
		value := strings.TrimSpace(string(raw))
		if value != "" {
			types = append(types, value)
		}
	}
	return types
}
