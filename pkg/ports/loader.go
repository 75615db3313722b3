package ports

import "context"

// NetLoader defines how raw net documents are retrieved.
// This allows the storage layer (Loam, FS, Memory) to be decoupled from the compiler.
type NetLoader interface {
	// Get retrieves the raw document (YAML or JSON) of a net by name.
	// Returns domain.ErrNetNotFound if the net does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all available nets, sorted.
	List(ctx context.Context) ([]string, error)
}
