// Package endpoints maps resources and operations to REST paths.
package endpoints

import (
	"net/url"
	"strings"
)

// Operation is a CRUD action on a resource.
type Operation int

// Operations.
const (
	List Operation = iota
	Get
	Create
	Update
	Delete
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case List:
		return "list"
	case Get:
		return "get"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Registry builds request paths. It is a pure value and safe for concurrent use.
type Registry struct {
	prefix string
}

// New creates a Registry. A non-empty prefix such as "/api/v1" is
// prepended to every path.
func New(prefix string) Registry {
	prefix = strings.TrimRight(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return Registry{prefix: prefix}
}

// URL returns the path for op on resource. List and Create address the
// collection and ignore id. The id must already be validated by the caller.
func (r Registry) URL(resource string, op Operation, id string) string {
	switch op {
	case List, Create:
		return r.Collection(resource)
	default:
		return r.Item(resource, id)
	}
}

// Collection returns the collection path, e.g. /tasks.
func (r Registry) Collection(resource string) string {
	return r.prefix + "/" + resource
}

// Item returns the path of a single record, e.g. /tasks/42.
func (r Registry) Item(resource, id string) string {
	return r.Collection(resource) + "/" + url.PathEscape(id)
}
