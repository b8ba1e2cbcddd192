package usecase

import "time"

const (
	// DefaultBalanceTTL bounds how long a cached daily balance is served
	// before falling back to the store.
	DefaultBalanceTTL = time.Hour

	// DefaultReportTTL is longer than the balance TTL because reports are
	// more expensive to rebuild.
	DefaultReportTTL = 2 * time.Hour

	// DefaultCascadeDays bounds how far forward a cascade recomputes.
	DefaultCascadeDays = 30

	// DefaultStoreTimeout bounds a single day's recomputation so a stuck
	// backend fails into the error path instead of blocking a cascade.
	DefaultStoreTimeout = 10 * time.Second
)
