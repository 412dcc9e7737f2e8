package ports

import (
	"context"

	"github.com/aretw0/lineator/pkg/domain"
)

// ResultStore caches lineation records.
// Keys are domain.Fingerprint values of the raw description.
type ResultStore interface {
	// Put stores the record under key, replacing any previous one.
	Put(ctx context.Context, key string, rec *domain.Record) error

	// Get retrieves the record for key.
	// Returns domain.ErrRecordNotFound if nothing is stored under key.
	Get(ctx context.Context, key string) (*domain.Record, error)

	// Delete removes the record for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys.
	List(ctx context.Context) ([]string, error)
}
