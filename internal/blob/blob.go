// Package blob stores raw photo bytes, referenced by the filename kept in
// the database record.
package blob

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Load when no blob has the given name.
var ErrNotExist = errors.New("blob does not exist")

// Store holds raw photo bytes under server-generated names.
type Store interface {
	// Save writes the bytes under name, overwriting any previous blob.
	Save(ctx context.Context, name string, data []byte) error
	// Load returns the bytes stored under name, or ErrNotExist.
	Load(ctx context.Context, name string) ([]byte, error)
	// Remove deletes the blob. Removing a missing blob is not an error.
	Remove(ctx context.Context, name string) error
}
