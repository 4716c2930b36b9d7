package domain

import "strings"

// QueryKey identifies a cache entry: a resource name followed by parameters.
type QueryKey []string

// Key builds a QueryKey from its parts.
func Key(parts ...string) QueryKey {
	return QueryKey(parts)
}

// String returns the canonical form used as the cache map key.
func (k QueryKey) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k starts with every part of prefix.
func (k QueryKey) HasPrefix(prefix QueryKey) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}

// QueryStatus is the lifecycle state of a cache entry.
type QueryStatus int

// Query states.
const (
	StatusIdle QueryStatus = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// String returns the status name.
func (s QueryStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}
