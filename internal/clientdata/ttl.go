package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// Symbol search results are stable - company listings rarely change
	TTLSearch = 24 * time.Hour

	// Daily history only gains one bar per trading day
	TTLChart = time.Hour

	// Quotes are time-sensitive
	TTLQuote = 5 * time.Minute
)
