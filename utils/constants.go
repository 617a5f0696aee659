// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AvailabilityCachePrefix keys cached weekly-availability snapshots by tutor ID.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL bounds staleness of cached availability reads;
// writes invalidate eagerly.
const AvailabilityCacheTTL = 15 * time.Minute
