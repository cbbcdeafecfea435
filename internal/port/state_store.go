package port

import "context"

type StateStore interface {
	// Load reads the document stored under key, returning (nil, nil) when
	// nothing has been stored yet.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save overwrites the document stored under key in full.
	Save(ctx context.Context, key string, data []byte) error
}
