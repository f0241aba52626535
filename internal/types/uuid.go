package types

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for generated identifiers, one per entity kind.
const (
	UUIDPrefixPricingRule  = "rule"
	UUIDPrefixDiscountRule = "disc"
	UUIDPrefixTaxRule      = "tax"
	UUIDPrefixLineItem     = "li"
	UUIDPrefixCalculation  = "calc"
)

// GenerateUUID returns a lowercase ULID.
func GenerateUUID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
}

// GenerateUUIDWithPrefix returns a lowercase ULID prefixed with the entity
// kind, e.g. "rule_01hgw...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
