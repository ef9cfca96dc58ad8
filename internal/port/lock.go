package port

import (
	"context"
	"time"
)

// Locker hands out short-lived cluster-wide locks. TryLock returns ok=false
// without error when another holder has the key.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
