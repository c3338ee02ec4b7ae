package tables

// Tables loads the table registry from its configured location.
type Tables interface {
	// Load reads, parses and validates the registry.
	Load() (*Registry, error)
}
