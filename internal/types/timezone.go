package types

import (
	"strings"
	"time"
)

// timezoneAbbreviations maps common abbreviations tenants type into their
// space settings onto IANA identifiers. Time-slot rules are evaluated in
// the tenant's timezone, so the mapping has to be deterministic even for
// ambiguous abbreviations.
var timezoneAbbreviations = map[string]string{
	"IST": "Asia/Kolkata",

	"EST":  "America/New_York",
	"CST":  "America/Chicago",
	"MST":  "America/Denver",
	"PST":  "America/Los_Angeles",
	"AKST": "America/Anchorage",

	"GMT": "Europe/London",
	"BST": "Europe/London",
	"CET": "Europe/Berlin",
	"EET": "Europe/Athens",
	"WET": "Europe/Lisbon",
	"MSK": "Europe/Moscow",

	"JST":  "Asia/Tokyo",
	"KST":  "Asia/Seoul",
	"SGT":  "Asia/Singapore",
	"AEST": "Australia/Sydney",
	"AWST": "Australia/Perth",
}

// ResolveTimezone converts a timezone abbreviation to an IANA identifier,
// or returns the input unchanged if it is not a known abbreviation.
func ResolveTimezone(timezone string) string {
	if iana, ok := timezoneAbbreviations[strings.ToUpper(timezone)]; ok {
		return iana
	}
	return timezone
}

// ValidateTimezone checks that a timezone resolves to a loadable location.
func ValidateTimezone(timezone string) error {
	_, err := time.LoadLocation(ResolveTimezone(timezone))
	return err
}

// LoadTimezone loads the location for a tenant timezone, falling back to
// UTC when the value is empty or unknown.
func LoadTimezone(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(ResolveTimezone(timezone))
	if err != nil {
		return time.UTC
	}
	return loc
}
