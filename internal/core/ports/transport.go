package ports

import "context"

// Transport performs JSON requests against the REST backend.
// Every failure is a *domain.APIError.
//
//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	// Get decodes the response body of GET path into out.
	Get(ctx context.Context, path string, out any) error

	// Post sends body as JSON and decodes the response into out. A nil out discards the body.
	Post(ctx context.Context, path string, body, out any) error

	// Put sends body as JSON and decodes the response into out. A nil out discards the body.
	Put(ctx context.Context, path string, body, out any) error

	// Delete issues DELETE path and discards the response body.
	Delete(ctx context.Context, path string) error
}
