package ports

import "context"

// Storage is a string key/value store scoped to one client, the durable
// mirror of the in-memory session.
type Storage interface {
	// Get returns the value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// StorageProvider hands out the Storage namespace of a client.
type StorageProvider interface {
	Namespace(clientID string) Storage
}
