package query

import (
	"go.trai.ch/smartmate/internal/core/domain"
	"golang.org/x/sync/singleflight"
)

// Issue starts a request for key without waiting for its result.
func Issue(c *Client, key domain.QueryKey, fn Fetcher, force bool) <-chan singleflight.Result {
	return c.start(key, fn, force)
}
