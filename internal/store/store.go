// Package store persists document records. The Repository interface hides
// the backing model so the file-backed implementation can later be swapped
// for an embedded key-value store without touching callers.
package store

import (
	"context"

	"legalease-platform/models"
)

// Repository is the document record store contract. Append must serialize
// concurrent callers: the file-backed implementation rewrites the whole
// collection on every append, which is a lost-update race without internal
// serialization.
type Repository interface {
	List(ctx context.Context) ([]models.DocumentRecord, error)
	Get(ctx context.Context, id string) (models.DocumentRecord, error)
	Append(ctx context.Context, record models.DocumentRecord) error
}
