// Package domain defines the Jet merchant API data-transfer types and their
// validation rules.
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// TimestampLayout is the API's wire form for product dates.
const TimestampLayout = "2006-01-02T15:04:05.0000000-0700"

// Timestamp is a time encoded in the API's date format. Decoding also
// accepts RFC 3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{TimestampLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: %w", s, ErrInvalidEnum)
}

// MAPType is the minimum advertised price policy for a product.
type MAPType string

// MAP policy constants.
const (
	MAPNoRestrictions    MAPType = "101"
	MAPMemberSavingsOnly MAPType = "102"
	MAPNoMemberSavings   MAPType = "103"
)

// ParseMAPType validates a MAP policy string. An empty string yields the
// default policy.
func ParseMAPType(s string) (MAPType, error) {
	switch MAPType(s) {
	case "":
		return MAPNoRestrictions, nil
	case MAPNoRestrictions, MAPMemberSavingsOnly, MAPNoMemberSavings:
		return MAPType(s), nil
	default:
		return "", fmt.Errorf("map_implementation %q: %w", s, ErrInvalidEnum)
	}
}

// ProductStatus is the listing status reported for a merchant SKU.
type ProductStatus string

// Product status constants.
const (
	StatusNone               ProductStatus = ""
	StatusProcessing         ProductStatus = "Processing"
	StatusAvailable          ProductStatus = "Available for Purchase"
	StatusUnavailable        ProductStatus = "Unavailable for Purchase"
	StatusArchived           ProductStatus = "Archived"
	StatusExcluded           ProductStatus = "Excluded"
	StatusMissingListingData ProductStatus = "Missing Listing Data"
)

var productStatuses = []ProductStatus{
	StatusProcessing,
	StatusAvailable,
	StatusUnavailable,
	StatusArchived,
	StatusExcluded,
	StatusMissingListingData,
}

// ParseProductStatus matches s case-insensitively. Unknown values return
// StatusNone and ErrInvalidEnum.
func ParseProductStatus(s string) (ProductStatus, error) {
	for _, st := range productStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return StatusNone, fmt.Errorf("status %q: %w", s, ErrInvalidEnum)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
