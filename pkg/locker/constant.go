package locker

import "time"

const (
	DefaultKeyPrefix = "planner:lock:"
	DefaultTTL       = 2 * time.Minute
)
