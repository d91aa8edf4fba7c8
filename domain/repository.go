package domain

import "context"

// Repository is the storage-agnostic CRUD contract every backend implements.
// T is the entity, P its pointer-field patch struct (a nil field leaves the
// stored value untouched).
//
// Identifiers cross this boundary as strings; each backend converts to and
// from its native representation internally and never leaks it upward. A
// malformed id is indistinguishable from an absent one: GetByID and Update
// answer ErrNotFound, Delete answers (false, nil). Storage-connectivity
// failures propagate as errors from any operation.
type Repository[T any, P any] interface {
	// GetAll returns every stored entity; an empty collection is an empty
	// slice, not an error.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the entity or ErrNotFound.
	GetByID(ctx context.Context, id string) (*T, error)

	// Create assigns a collection-unique identifier and stores the entity,
	// returning it with the id set.
	Create(ctx context.Context, entity *T) (*T, error)

	// Update applies a partial merge and returns the merged entity, or
	// ErrNotFound when the id matches nothing.
	Update(ctx context.Context, id string, patch *P) (*T, error)

	// Delete reports whether something was removed. A miss is (false, nil);
	// an error means the delete itself failed.
	Delete(ctx context.Context, id string) (bool, error)
}

// OwnerQueries is the optional owner-relationship capability. Only
// repositories whose entity references an owner provide it; services assert
// it at runtime before relying on it.
type OwnerQueries[T any] interface {
	GetByOwnerID(ctx context.Context, ownerID string) ([]T, error)
}
