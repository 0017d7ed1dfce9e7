// Package ratings defines the data model for EA FC player rating pages.
//
// A page is one API response unit holding up to DefaultPageLimit player
// records. Records are kept opaque: the scraper never interprets their
// contents, it only concatenates them in offset order.
package ratings

import (
	"encoding/json"
	"fmt"
)

// DefaultPageLimit is the page size requested from the ratings API.
// A page with fewer items marks the end of the dataset.
const DefaultPageLimit = 100

// Page represents one parsed API response.
type Page struct {
	// Items are the player records of this page, in server order.
	// Each record stays raw JSON so output reproduces server content.
	Items []json.RawMessage `json:"items"`
}

// ParsePage parses a raw API response body.
// A body without an items array is an error: every valid page, including
// the final empty one, carries the field.
func ParsePage(data []byte) (*Page, error) {
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	if page.Items == nil {
		return nil, fmt.Errorf("parse page: missing items field")
	}
	return &page, nil
}

// Last reports whether this page is the final one for the given page limit.
func (p *Page) Last(limit int) bool {
	return len(p.Items) < limit
}
