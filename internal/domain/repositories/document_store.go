package repositories

import "context"

// DocumentStore persists uploaded document bytes and returns a stable
// locator. The core never interprets the bytes, only keeps the locator.
type DocumentStore interface {
	Save(ctx context.Context, ownerID, documentType, filename, contentType string, content []byte) (string, error)
}
